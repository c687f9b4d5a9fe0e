package forwarding

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Tnze/go-mc/offline"
	"github.com/google/uuid"

	"github.com/gstoney/mclimbo/packet"
	"github.com/gstoney/mclimbo/version"
)

var (
	// ErrUnexpectedResponse marks a login plugin response that does not
	// answer the forwarding query. The caller ignores it.
	ErrUnexpectedResponse = errors.New("login plugin response does not answer the forwarding query")
	ErrLoginState         = errors.New("forwarding login used out of order")
)

// Reason is why forwarded data was rejected.
type Reason int

const (
	NoForwardingData Reason = iota + 1
	InvalidForwardedData
	VelocityRequired
	KeyIntegrityFailed
)

func (r Reason) String() string {
	switch r {
	case NoForwardingData:
		return "no forwarding data"
	case InvalidForwardedData:
		return "invalid forwarded data"
	case VelocityRequired:
		return "velocity required"
	case KeyIntegrityFailed:
		return "key integrity failed"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// RejectError ends a login. Message is the configured text for Reason and
// is what the player sees.
type RejectError struct {
	Reason  Reason
	Message string
	Err     error
}

func (e *RejectError) Error() string {
	if e.Err != nil {
		return "forwarding rejected: " + e.Reason.String() + ": " + e.Err.Error()
	}
	return "forwarding rejected: " + e.Reason.String()
}

func (e *RejectError) Unwrap() error {
	return e.Err
}

// Identity is the authenticated player.
type Identity struct {
	Name       string
	UUID       uuid.UUID
	Address    string
	Properties []packet.Property
}

// Step is the outcome of Login.Start: either the identity is known, or Query
// must be sent to the client and its answer passed to Login.Response.
type Step struct {
	Identity *Identity
	Query    *packet.LoginPluginRequest
}

// Login verifies the forwarded identity of one connection. It is not safe
// for concurrent use; each connection owns its own Login.
type Login struct {
	cfg    *Config
	remote string
	now    func() time.Time

	forwarded *Identity
	queryID   int32
	pending   bool
	finished  bool
}

// NewLogin starts verification for a connection from remote, the socket
// address used as the player address when nothing is forwarded.
func (c *Config) NewLogin(remote string) *Login {
	return &Login{
		cfg:    c,
		remote: remote,
		now:    time.Now,
	}
}

// Handshake inspects the server address field of the handshake, where
// BungeeCord style proxies put the forwarded identity.
func (l *Login) Handshake(host string) error {
	switch l.cfg.scheme.(type) {
	case LegacyScheme:
		id, err := parseLegacy(host)
		if err != nil {
			return l.fail(NoForwardingData, err)
		}
		l.forwarded = id
	case BungeeGuardScheme:
		id, err := l.parseBungeeGuard(host)
		if err != nil {
			return l.fail(InvalidForwardedData, err)
		}
		l.forwarded = id
	}
	return nil
}

// Start is called with the name from LoginStart.
func (l *Login) Start(name string, v *version.Version) (Step, error) {
	if l.finished || l.pending {
		return Step{}, ErrLoginState
	}

	switch l.cfg.scheme.(type) {
	case NoneScheme:
		l.finished = true
		return Step{Identity: &Identity{
			Name:    name,
			UUID:    offline.NameToUUID(name),
			Address: l.remote,
		}}, nil
	case LegacyScheme, BungeeGuardScheme:
		if l.forwarded == nil {
			reason := NoForwardingData
			if l.cfg.Mode() == BungeeGuard {
				reason = InvalidForwardedData
			}
			return Step{}, l.fail(reason, errors.New("handshake carried no forwarded identity"))
		}
		id := *l.forwarded
		id.Name = name
		l.finished = true
		return Step{Identity: &id}, nil
	case ModernScheme:
		if v.Less(version.V1_13) {
			return Step{}, l.fail(VelocityRequired, fmt.Errorf("client %s cannot answer login plugin requests", v))
		}
		l.queryID = rand.Int31()
		l.pending = true
		return Step{Query: &packet.LoginPluginRequest{
			MessageID: l.queryID,
			Channel:   ModernChannel,
			Data:      []byte{ModernForwardingVersion},
		}}, nil
	}
	return Step{}, ErrLoginState
}

// Response checks the client's answer to the modern forwarding query. A
// response to some other query returns ErrUnexpectedResponse and leaves
// the login waiting.
func (l *Login) Response(messageID int32, successful bool, data []byte) (Identity, error) {
	if !l.pending || messageID != l.queryID {
		return Identity{}, ErrUnexpectedResponse
	}
	l.pending = false

	if !successful || len(data) == 0 {
		return Identity{}, l.fail(VelocityRequired, errors.New("proxy did not answer the forwarding query"))
	}

	scheme := l.cfg.scheme.(ModernScheme)
	id, err := verifyModern(scheme, data, l.now())
	if err != nil {
		var rej *RejectError
		if errors.As(err, &rej) {
			return Identity{}, l.fail(rej.Reason, rej.Err)
		}
		return Identity{}, l.fail(InvalidForwardedData, err)
	}

	l.finished = true
	return id, nil
}

// Pending reports whether the login waits for a plugin response.
func (l *Login) Pending() bool {
	return l.pending
}

func (l *Login) fail(r Reason, err error) *RejectError {
	l.finished = true
	l.pending = false
	return l.cfg.reject(r, err)
}
