package domain

type Role string

const (
	RoleAdmin             Role = "admin"
	RoleFarmer            Role = "farmer"
	RoleAuditor           Role = "auditor"
	RoleTransporter       Role = "transporter"
	RoleStorageHandler    Role = "storage-handler"
	RoleProductionManager Role = "production-manager"
	RoleDistributor       Role = "distributor"
)

// CouncilRoles is the fixed bundle granted and revoked together by the
// council membership operations.
var CouncilRoles = [4]Role{
	RoleAuditor,
	RoleTransporter,
	RoleStorageHandler,
	RoleProductionManager,
}
