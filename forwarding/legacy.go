package forwarding

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/google/uuid"

	"github.com/gstoney/mclimbo/packet"
)

// BungeeGuardTokenProperty is the profile property carrying the shared
// BungeeGuard token.
const BungeeGuardTokenProperty = "bungeeguard-token"

var (
	ErrHostParts    = errors.New("unexpected number of forwarded host fields")
	ErrMissingToken = errors.New("no bungeeguard token in forwarded properties")
	ErrBadToken     = errors.New("bungeeguard token not accepted")
)

// parseLegacy reads "host\x00address\x00uuid[\x00properties]".
func parseLegacy(host string) (*Identity, error) {
	parts := strings.Split(host, "\x00")
	if len(parts) != 3 && len(parts) != 4 {
		return nil, fmt.Errorf("%w: %d", ErrHostParts, len(parts))
	}
	return legacyIdentity(parts)
}

func (l *Login) parseBungeeGuard(host string) (*Identity, error) {
	parts := strings.Split(host, "\x00")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: %d", ErrHostParts, len(parts))
	}
	id, err := legacyIdentity(parts)
	if err != nil {
		return nil, err
	}

	scheme := l.cfg.scheme.(BungeeGuardScheme)
	kept := id.Properties[:0]
	found := false
	for _, p := range id.Properties {
		if p.Name != BungeeGuardTokenProperty {
			kept = append(kept, p)
			continue
		}
		if found {
			return nil, fmt.Errorf("%w: token sent twice", ErrBadToken)
		}
		if !scheme.HasToken(p.Value) {
			return nil, ErrBadToken
		}
		found = true
	}
	if !found {
		return nil, ErrMissingToken
	}
	id.Properties = kept
	return id, nil
}

func legacyIdentity(parts []string) (*Identity, error) {
	id, err := uuid.Parse(parts[2])
	if err != nil {
		return nil, fmt.Errorf("forwarded uuid: %w", err)
	}
	ident := &Identity{Address: parts[1], UUID: id}
	if len(parts) == 4 && parts[3] != "" {
		if ident.Properties, err = parseProperties([]byte(parts[3])); err != nil {
			return nil, fmt.Errorf("forwarded properties: %w", err)
		}
	}
	return ident, nil
}

// parseProperties reads a Mojang style property list:
// [{"name": "...", "value": "...", "signature": "..."}].
func parseProperties(data []byte) ([]packet.Property, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, jsonparser.MalformedArrayError
	}

	var (
		props   []packet.Property
		itemErr error
	)
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if itemErr != nil {
			return
		}
		if err != nil {
			itemErr = err
			return
		}
		if dataType != jsonparser.Object {
			itemErr = fmt.Errorf("property is %s, not an object", dataType)
			return
		}

		var p packet.Property
		if p.Name, itemErr = jsonparser.GetString(value, "name"); itemErr != nil {
			return
		}
		if p.Value, itemErr = jsonparser.GetString(value, "value"); itemErr != nil {
			return
		}
		sig, sigErr := jsonparser.GetString(value, "signature")
		switch {
		case sigErr == nil:
			p.Signature = packet.Some(sig)
		case !errors.Is(sigErr, jsonparser.KeyPathNotFoundError):
			itemErr = sigErr
			return
		}
		props = append(props, p)
	})
	if err != nil {
		return nil, err
	}
	if itemErr != nil {
		return nil, itemErr
	}
	return props, nil
}
