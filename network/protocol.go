package network

// Inbound message types
const (
	MsgMove    = "move"
	MsgClick   = "click"
	MsgCommand = "command"
)

// Outbound message types
const (
	MsgWelcome  = "welcome"
	MsgLine     = "line"
	MsgBanner   = "banner"
	MsgFirework = "firework"
	MsgReply    = "reply"
	MsgError    = "error"
)

// Inbound is a message from a websocket player
type Inbound struct {
	Type string `json:"type"`
	DX   int    `json:"dx,omitempty"`
	DZ   int    `json:"dz,omitempty"`
	X    int    `json:"x,omitempty"`
	Z    int    `json:"z,omitempty"`
	Line string `json:"line,omitempty"`
}

// Envelope is a message to a websocket player
type Envelope struct {
	Type  string   `json:"type"`
	ID    string   `json:"id,omitempty"`
	Text  string   `json:"text,omitempty"`
	Style string   `json:"style,omitempty"`
	Color string   `json:"color,omitempty"`
	OK    bool     `json:"ok,omitempty"`
	Lines []string `json:"lines,omitempty"`
	World string   `json:"world,omitempty"`
	X     float64  `json:"x,omitempty"`
	Y     float64  `json:"y,omitempty"`
	Z     float64  `json:"z,omitempty"`
}

// CommandRequest is the body of POST /api/commands
type CommandRequest struct {
	Line string `json:"line" binding:"required"`
}
