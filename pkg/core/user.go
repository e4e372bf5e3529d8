package core

// Capability names a single permission a user may hold. Providers gate
// their contributions on capabilities rather than roles so the mapping can
// evolve without touching provider code.
type Capability string

const (
	CapEditPosts        Capability = "edit_posts"
	CapEditPages        Capability = "edit_pages"
	CapEditOthersPosts  Capability = "edit_others_posts"
	CapEditUsers        Capability = "edit_users"
	CapUploadFiles      Capability = "upload_files"
	CapReadPrivatePosts Capability = "read_private_posts"
	CapReadPrivatePages Capability = "read_private_pages"
	CapManageOptions    Capability = "manage_options"
)

// Roles understood by the capability map. Unknown roles hold no
// capabilities at all.
const (
	RoleAdmin      = "admin"
	RoleEditor     = "editor"
	RoleAuthor     = "author"
	RoleSubscriber = "subscriber"
)

var roleCapabilities = map[string]map[Capability]bool{
	RoleAdmin: {
		CapEditPosts:        true,
		CapEditPages:        true,
		CapEditOthersPosts:  true,
		CapEditUsers:        true,
		CapUploadFiles:      true,
		CapReadPrivatePosts: true,
		CapReadPrivatePages: true,
		CapManageOptions:    true,
	},
	RoleEditor: {
		CapEditPosts:        true,
		CapEditPages:        true,
		CapEditOthersPosts:  true,
		CapUploadFiles:      true,
		CapReadPrivatePosts: true,
		CapReadPrivatePages: true,
	},
	RoleAuthor: {
		CapEditPosts:   true,
		CapUploadFiles: true,
	},
	RoleSubscriber: {},
}

// User identifies the authenticated caller of a search request. Identity is
// threaded explicitly through every provider call; there is no ambient
// "current user" state.
type User struct {
	ID          int64  `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Can reports whether the user's role grants the capability.
func (u User) Can(c Capability) bool {
	caps, ok := roleCapabilities[u.Role]
	if !ok {
		return false
	}
	return caps[c]
}
