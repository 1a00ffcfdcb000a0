// Package policy declares which privilege each {resource, action} pair
// requires. Routes consult this one table instead of decorating guards
// ad hoc, so enforcement stays uniform across resource types.
package policy

type Resource string

const (
	Users    Resource = "users"
	Roles    Resource = "roles"
	Catalogs Resource = "catalogs"
	Products Resource = "products"
	Devices  Resource = "devices"
	Loans    Resource = "loans"
)

type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
)

type Privilege int

const (
	// Authenticated requires a valid bearer token.
	Authenticated Privilege = iota
	// Admin additionally requires the administrator flag.
	Admin
)

type rule struct {
	Resource Resource
	Action   Action
}

var rules = map[rule]Privilege{
	{Users, Read}:   Authenticated,
	{Users, Create}: Admin,
	{Users, Update}: Admin,
	{Users, Delete}: Admin,

	{Roles, Read}:   Authenticated,
	{Roles, Create}: Admin,
	{Roles, Update}: Admin,
	{Roles, Delete}: Admin,

	{Catalogs, Read}:   Authenticated,
	{Catalogs, Create}: Admin,
	{Catalogs, Update}: Admin,
	{Catalogs, Delete}: Admin,

	{Products, Read}:   Authenticated,
	{Products, Create}: Admin,
	{Products, Update}: Admin,
	{Products, Delete}: Admin,

	{Devices, Read}:   Authenticated,
	{Devices, Create}: Admin,
	{Devices, Update}: Admin,
	{Devices, Delete}: Admin,

	// Any authenticated user may file a loan request; resolving one is
	// an administrative act.
	{Loans, Read}:   Authenticated,
	{Loans, Create}: Authenticated,
	{Loans, Update}: Admin,
	{Loans, Delete}: Admin,
}

// Required returns the privilege for a resource/action pair. Pairs not in
// the table require Admin, so an unlisted route fails closed.
func Required(r Resource, a Action) Privilege {
	if p, ok := rules[rule{r, a}]; ok {
		return p
	}
	return Admin
}
