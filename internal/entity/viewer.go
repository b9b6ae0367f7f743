package entity

// Credentials is the minimal payload needed to make authenticated
// requests: the auth token attached as "Authorization: Token <token>"
// plus the username it was issued for. Immutable once issued.
type Credentials struct {
	Username  string
	AuthToken string
}

// Viewer is the currently authenticated user. It exists only while a
// session is active; everywhere else a nil *Viewer means "not logged in".
type Viewer struct {
	Credentials Credentials
	Email       string
	Profile     Profile
}

func (v *Viewer) Username() string {
	return v.Credentials.Username
}

// CredentialsOf extracts credentials from an optional viewer.
func CredentialsOf(viewer *Viewer) *Credentials {
	if viewer == nil {
		return nil
	}
	creds := viewer.Credentials
	return &creds
}

// Profile is the public-facing part of a user: bio and avatar.
type Profile struct {
	Bio    string
	Avatar Avatar
}

// Avatar is a profile image URL. The server may send an empty or null
// image; rendering falls back to the default smiley in that case.
type Avatar string

const defaultAvatarURL = "https://static.productionready.io/images/smiley-cyrus.jpg"

func (a Avatar) Src() string {
	if a == "" {
		return defaultAvatarURL
	}
	return string(a)
}
