package entity

// Identity is the signed-in user as the identity provider reports it:
// uid, display name, and photo. Roles live separately in user-role.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}
