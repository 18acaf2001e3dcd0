package rbac

// Default policy for the examination portal.
var RolePermissions = map[Role][]string{
	RoleParticipant: {
		"exam:view",
		"result:submit",
		"result:view-own",
	},
	RoleSupervisor: {
		"exam:view",
		"bank:view",
		"question:view",
		"config:view",
		"result:view-all",
	},
	RoleAdmin: {
		"*", // everything
	},
}
