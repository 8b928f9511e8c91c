package client

// Navigator is the navigation side effect pages and guards trigger.
type Navigator interface {
	Navigate(path string)
	Back()
}

// RouteGuard gates navigation on session presence. Both checks run
// once per navigation; the redirect fires as soon as the condition is
// observed and the caller renders nothing for that frame.
type RouteGuard struct {
	Session *SessionStore
	Nav     Navigator
}

// Private reports whether an authenticated-only view may render.
// Without a token it redirects to the login view.
func (g *RouteGuard) Private() bool {
	if g.Session.Token() == "" {
		g.Nav.Navigate("/login")
		return false
	}
	return true
}

// Public reports whether a login/register view may render. With a
// token already present it redirects home.
func (g *RouteGuard) Public() bool {
	if g.Session.Token() != "" {
		g.Nav.Navigate("/")
		return false
	}
	return true
}
