package client

// App is the explicitly-scoped application context injected into page
// controllers: session, gateway, refresh signal and navigation in one
// place instead of ambient globals.
type App struct {
	Session *SessionStore
	Gateway *Gateway
	Bus     *RefreshBus
	Nav     Navigator
}

func NewApp(host, sessionPath string, nav Navigator) *App {
	session := NewSessionStore(sessionPath)
	return &App{
		Session: session,
		Gateway: NewGateway(host, session),
		Bus:     NewRefreshBus(),
		Nav:     nav,
	}
}

func (a *App) Guard() *RouteGuard {
	return &RouteGuard{Session: a.Session, Nav: a.Nav}
}
