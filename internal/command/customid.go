package command

import "strings"

// CustomIDSeparator splits the owning command name from the rest of a
// component or modal custom id. Command names may not contain it.
const CustomIDSeparator = "-"

// CustomID builds a component custom id owned by command.
func CustomID(command, suffix string) string {
	return command + CustomIDSeparator + suffix
}

// ParseCustomID returns the owning command name and the remainder of id.
// An id without a separator is treated as a bare command name.
func ParseCustomID(id string) (command, suffix string) {
	command, suffix, _ = strings.Cut(id, CustomIDSeparator)
	return command, suffix
}
