//go:build js && wasm

package main

import (
	"encoding/hex"
	"fmt"
	"syscall/js"

	json "github.com/goccy/go-json"

	"github.com/rharkanson/go-ecc-dh/internal/config"
	"github.com/rharkanson/go-ecc-dh/internal/protocol/exchange"
	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// Active state machines by session handle.
var sessions = make(map[string]ecdh.StateMachine)

func main() {
	c := make(chan struct{})

	fmt.Println("go-ecc-dh WASM Initialized")

	js.Global().Set("GoECDH", map[string]interface{}{
		"NewExchange": js.FuncOf(NewExchange),
		"Update":      js.FuncOf(Update),
		"Result":      js.FuncOf(Result),
	})

	<-c
}

// paramsInput is the JSON accepted by NewExchange. Curve fields follow the
// config file format and fall back to the demo curve.
type paramsInput struct {
	config.Config
	PartyID   string `json:"partyID"`
	PeerID    string `json:"peerID"`
	Private   string `json:"private"`
	SessionID string `json:"sessionID"`
}

// messageDTO carries a protocol message across the JS boundary.
type messageDTO struct {
	From  string   `json:"from"`
	To    []string `json:"to"`
	Data  string   `json:"data"` // Hex encoded
	Type  string   `json:"type"`
	Round uint32   `json:"round"`
}

// NewExchange starts one party of an exchange.
// Arguments:
// 0: JSON string of parameters
// Returns:
// JSON {sessionID, messages} or an error string
func NewExchange(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (jsonParams)"
	}

	input := paramsInput{Config: *config.GetDefaultConfig()}
	if err := json.Unmarshal([]byte(args[0].String()), &input); err != nil {
		return fmt.Sprintf("error: invalid json: %v", err)
	}
	if input.PartyID == "" || input.PeerID == "" {
		return "error: partyID and peerID are required"
	}

	input.AlicePrivate = input.Private
	cfg, err := input.SessionConfig()
	if err != nil {
		return fmt.Sprintf("error: invalid parameters: %v", err)
	}

	params := &ecdh.Parameters{
		PartyID:       exchange.NewParty(input.PartyID),
		Peer:          exchange.NewParty(input.PeerID),
		Group:         cfg.Group,
		A:             cfg.A,
		B:             cfg.B,
		P:             cfg.P,
		Gx:            cfg.Gx,
		Gy:            cfg.Gy,
		PrivateScalar: cfg.AlicePrivate,
		Fold:          cfg.Fold,
		Stepwise:      cfg.Stepwise,
		SessionID:     []byte(input.SessionID),
	}

	sm, outMsgs, err := exchange.NewStateMachine(params)
	if err != nil {
		return fmt.Sprintf("error: failed to create state machine: %v", err)
	}

	handle := fmt.Sprintf("%s-%s", input.PartyID, input.SessionID)
	sessions[handle] = sm

	resp := map[string]interface{}{
		"sessionID": handle,
		"messages":  encodeMessages(outMsgs),
	}
	respBytes, _ := json.Marshal(resp)
	return string(respBytes)
}

// Update applies a peer message to a session.
// Arguments:
// 0: Session ID (string)
// 1: JSON string of message
// Returns:
// JSON array of output messages or an error string
func Update(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return "error: expected 2 arguments (sessionID, jsonMsg)"
	}

	handle := args[0].String()
	sm, ok := sessions[handle]
	if !ok {
		return "error: session not found"
	}

	var dto messageDTO
	if err := json.Unmarshal([]byte(args[1].String()), &dto); err != nil {
		return fmt.Sprintf("error: invalid message dto: %v", err)
	}
	data, err := hex.DecodeString(dto.Data)
	if err != nil {
		return fmt.Sprintf("error: invalid hex data: %v", err)
	}

	var to []ecdh.PartyID
	for _, id := range dto.To {
		to = append(to, exchange.NewParty(id))
	}
	msg := &exchange.ExchangeMessage{
		FromParty:  exchange.NewParty(dto.From),
		ToParties:  to,
		Data:       data,
		TypeString: dto.Type,
		RoundNum:   dto.Round,
	}

	next, outMsgs, err := sm.Update(msg)
	if err != nil {
		return fmt.Sprintf("error: update failed: %v", err)
	}
	sessions[handle] = next

	b, _ := json.Marshal(encodeMessages(outMsgs))
	return string(b)
}

// Result returns the outcome of a finished session.
// Arguments:
// 0: Session ID (string)
// Returns:
// JSON string, null while the exchange is running, or an error string
func Result(this js.Value, args []js.Value) interface{} {
	if len(args) != 1 {
		return "error: expected 1 argument (sessionID)"
	}
	sm, ok := sessions[args[0].String()]
	if !ok {
		return "error: session not found"
	}

	res, ok := sm.Result().(*exchange.Result)
	if !ok || res == nil {
		return nil
	}

	// Elements are returned as strings and hex encodings; JS numbers
	// cannot hold the coordinates.
	b, err := json.Marshal(map[string]string{
		"group":        res.Group,
		"publicKey":    res.PublicKey.String(),
		"peerKey":      res.PeerPublicKey.String(),
		"sharedSecret": res.SharedSecret.String(),
		"sharedBytes":  hex.EncodeToString(res.SharedSecret.Bytes()),
	})
	if err != nil {
		return fmt.Sprintf("error: marshal result failed: %v", err)
	}
	return string(b)
}

func encodeMessages(msgs []ecdh.Message) []messageDTO {
	out := make([]messageDTO, 0, len(msgs))
	for _, m := range msgs {
		dto := messageDTO{
			From:  m.From().ID(),
			Data:  hex.EncodeToString(m.Payload()),
			Type:  m.Type(),
			Round: m.RoundNumber(),
		}
		for _, p := range m.To() {
			dto.To = append(dto.To, p.ID())
		}
		out = append(out, dto)
	}
	return out
}
