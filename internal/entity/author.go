package entity

// Author is an article's or comment's author, classified relative to the
// current viewer at decode time. Exactly one of three cases holds:
//
//   - ViewerAuthor: the author is the viewer themselves
//   - FollowedAuthor: someone else the viewer follows
//   - UnfollowedAuthor: someone else the viewer does not follow
//     (also the case when nobody is logged in)
//
// Only ViewerAuthor carries credentials, so a non-viewer author holding
// an auth token is unrepresentable. The classification is fixed at decode
// time; decoding the same server payload under a different viewer may
// legitimately produce a different case.
type Author interface {
	Username() string
	Profile() Profile

	isAuthor()
}

// ViewerAuthor is the current viewer appearing as an author.
type ViewerAuthor struct {
	Credentials Credentials
	UserProfile Profile
}

func (a ViewerAuthor) Username() string { return a.Credentials.Username }
func (a ViewerAuthor) Profile() Profile { return a.UserProfile }
func (ViewerAuthor) isAuthor()          {}

// FollowedAuthor is another user the viewer follows.
type FollowedAuthor struct {
	Name        string
	UserProfile Profile
}

func (a FollowedAuthor) Username() string { return a.Name }
func (a FollowedAuthor) Profile() Profile { return a.UserProfile }
func (FollowedAuthor) isAuthor()          {}

// UnfollowedAuthor is another user the viewer does not follow.
type UnfollowedAuthor struct {
	Name        string
	UserProfile Profile
}

func (a UnfollowedAuthor) Username() string { return a.Name }
func (a UnfollowedAuthor) Profile() Profile { return a.UserProfile }
func (UnfollowedAuthor) isAuthor()          {}

// Followed reports whether the viewer follows the author. The viewer
// never follows themselves.
func Followed(a Author) bool {
	_, ok := a.(FollowedAuthor)
	return ok
}
