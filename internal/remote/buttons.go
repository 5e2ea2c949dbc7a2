package remote

// Buttons is the closed set of button names the box recognizes, in the
// order they appear on the physical remote.
var Buttons = []string{
	"power",
	"up",
	"right",
	"left",
	"down",
	"ok",
	"back",
	"home",
	"volDown",
	"volUp",
	"mute",
	"channelDown",
	"channelUp",
	"fastBackward",
	"fastForward",
	"playPause",
	"0",
	"1",
	"2",
	"3",
	"4",
	"5",
	"6",
	"7",
	"8",
	"9",
	"stop",
	"record",
}

var buttonSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Buttons))
	for _, b := range Buttons {
		set[b] = struct{}{}
	}
	return set
}()

// ValidButton reports whether name is in the recognized button set.
func ValidButton(name string) bool {
	_, ok := buttonSet[name]
	return ok
}
