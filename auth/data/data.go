package data

import (
	"github.com/rs/zerolog"
)

type ACLRole string

const (
	RoleGuest ACLRole = "guest"
	RoleAdmin ACLRole = "admin"
)

type AuthProvider string

const (
	ProviderGuest AuthProvider = "guest"
	ProviderJWT   AuthProvider = "jwt"
	ProviderDev   AuthProvider = "dev-environment"
)

// ACLContext is the caller of a request as seen by the admin guard.
type ACLContext struct {
	Subject  string
	Role     ACLRole
	Provider AuthProvider
}

const GuestName = "Guest"

func (a ACLContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a *ACLContext) MarshalZerologObjectWithLevel(e *zerolog.Event, level zerolog.Level) {
	if level <= zerolog.DebugLevel {
		e.Str("role", string(a.Role)).
			Str("provider", string(a.Provider))
	}
	if level == zerolog.TraceLevel {
		e.Str("subject", a.Subject)
	}
}

func GuestContext() ACLContext {
	return ACLContext{
		Subject:  GuestName,
		Role:     RoleGuest,
		Provider: ProviderGuest,
	}
}

func DevContext() ACLContext {
	return ACLContext{
		Subject:  "dev admin",
		Role:     RoleAdmin,
		Provider: ProviderDev,
	}
}
