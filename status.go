package mclimbo

import (
	"encoding/json"

	"github.com/Tnze/go-mc/chat"

	"github.com/gstoney/mclimbo/packet"
	"github.com/gstoney/mclimbo/version"
)

// StatusVersion, StatusPlayers and Status are the server list ping JSON.
type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type StatusPlayers struct {
	Max    int `json:"max"`
	Online int `json:"online"`
}

type Status struct {
	Version     StatusVersion `json:"version"`
	Players     StatusPlayers `json:"players"`
	Description chat.Message  `json:"description"`
}

// status answers for client version v. A client the world cannot be sent
// to is told the newest protocol it can, so it shows the server as
// incompatible.
func (s *Server) status(v *version.Version) Status {
	st := Status{
		Version: StatusVersion{
			Name:     s.versions.Min().String() + "-" + s.newest.String(),
			Protocol: s.newest.Protocol(),
		},
		Players: StatusPlayers{
			Max:    s.cfg.MaxPlayers,
			Online: s.Online(),
		},
		Description: s.motd,
	}
	if s.world.Supports(v) {
		st.Version = StatusVersion{Name: v.String(), Protocol: v.Protocol()}
	}
	if st.Players.Max < 0 {
		st.Players.Max = st.Players.Online + 1
	}
	return st
}

func (ss *session) handleStatus(v *version.Version) error {
	ss.conn.SetState(packet.Status)
	if v.IsSupported() {
		ss.conn.SetVersion(v)
	} else {
		ss.conn.SetVersion(ss.srv.versions.Max())
	}

	for {
		p, err := ss.conn.ReadPacket()
		if err != nil {
			return err
		}

		switch p := p.(type) {
		case *packet.StatusRequest:
			resp, err := json.Marshal(ss.srv.status(v))
			if err != nil {
				return err
			}
			if err = ss.conn.WritePacket(&packet.StatusResponse{Response: string(resp)}); err != nil {
				return err
			}
		case *packet.StatusPing:
			return ss.conn.WritePacket(&packet.StatusPing{Payload: p.Payload})
		}
	}
}
