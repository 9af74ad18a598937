package protocol

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	NewGame
	PlayCard
	DrawCard
	ChooseSuit
	State
	Error
)

var CmdNames = map[Cmd]string{
	Null:       "Null",
	NewGame:    "NewGame",
	PlayCard:   "PlayCard",
	DrawCard:   "DrawCard",
	ChooseSuit: "ChooseSuit",
	State:      "State",
	Error:      "Error",
}

var NameToCmd = map[string]Cmd{
	"Null":       Null,
	"NewGame":    NewGame,
	"PlayCard":   PlayCard,
	"DrawCard":   DrawCard,
	"ChooseSuit": ChooseSuit,
	"State":      State,
	"Error":      Error,
}

func (c Cmd) String() string {
	return CmdNames[c]
}
