package command

// HandlerKind names a sub-interaction a command can answer beyond its primary
// invocation.
type HandlerKind string

const (
	ButtonClick  HandlerKind = "button-click"
	Autocomplete HandlerKind = "autocomplete"
	ModalSubmit  HandlerKind = "modal-submit"
)

// HandlerKinds is the allow-list of kinds a definition may declare.
var HandlerKinds = []HandlerKind{ButtonClick, Autocomplete, ModalSubmit}

// ParseHandlerKind reports whether s is one of the allowed kinds.
func ParseHandlerKind(s string) (HandlerKind, bool) {
	for _, k := range HandlerKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func (k HandlerKind) String() string { return string(k) }
