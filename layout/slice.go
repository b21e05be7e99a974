package layout

import "errors"

// Slice holds an ordered sequence of Commands. Unlike a Command, a Slice is
// never a resolution target on its own.
//
// Like Element, only the mutators (Populate, AddCommand) take a pointer.
type Slice struct {
	rng       Range
	relOffset uint64
	size      uint64
	index     int
	commands  []Command
}

// Populate sets the slice's absolute range [start, end), its offset within the
// file, its size and its index in the file.
func (s *Slice) Populate(start, end, relOffset, size uint64, index int) {
	s.rng = Range{Start: start, End: end}
	s.relOffset = relOffset
	s.size = size
	s.index = index
}

// AddCommand appends c to the slice. Commands must be added in ascending,
// non-overlapping order; this is not checked here.
func (s *Slice) AddCommand(c Command) {
	s.commands = append(s.commands, c)
}

// Range returns the slice's absolute range.
func (s Slice) Range() Range { return s.rng }

// Contains reports whether addr is inside the slice's range.
func (s Slice) Contains(addr uint64) bool { return s.rng.Contains(addr) }

// RelativeOffset returns the offset of Range().Start within the file.
func (s Slice) RelativeOffset() uint64 { return s.relOffset }

// RelativeRange returns the slice's range expressed relative to the file.
func (s Slice) RelativeRange() Range {
	return Range{Start: s.relOffset, End: s.relOffset + s.size}
}

// Size returns the recorded size.
func (s Slice) Size() uint64 { return s.size }

// Index returns the slice's recorded position in the file.
func (s Slice) Index() int { return s.index }

// NumCommands returns the number of commands.
func (s Slice) NumCommands() int { return len(s.commands) }

// Command returns the i'th command. It panics if i is out of range.
func (s Slice) Command(i int) Command { return s.commands[i] }

// FindAddress resolves addr to a command and, when the command has elements,
// an element. The returned Coordinates.Slice is the slice's recorded index.
// On error every field of the returned Coordinates is -1.
//
// Errors from the matching command are returned unchanged. A slice with no
// commands, or a gap between commands, yields ErrNotFound. A command with an
// inverted range on the search path yields that command's ErrCommandIsBroken,
// the same error Command.FindAddress reports for it.
func (s Slice) FindAddress(addr uint64) (Coordinates, error) {
	if s.rng.IsEmpty() {
		return noCoordinates, s.broken()
	}
	if !s.rng.Contains(addr) {
		return noCoordinates, outsideScope(addr, s.rng)
	}
	if len(s.commands) == 0 {
		return noCoordinates, notFound(addr)
	}

	pos, err := search(s.commands, addr)
	if errors.Is(err, errGap) {
		return noCoordinates, notFound(addr)
	}
	if errors.Is(err, errBrokenChild) {
		return noCoordinates, s.commands[pos].broken()
	}
	if err != nil {
		return noCoordinates, err
	}
	cmd := s.commands[pos]
	if !s.rng.Covers(cmd.rng) {
		return noCoordinates, s.broken()
	}

	elem, err := cmd.FindAddress(addr)
	if err != nil {
		return noCoordinates, err
	}
	return Coordinates{Slice: s.index, Command: pos, Element: elem}, nil
}

func (s Slice) broken() error {
	return &BrokenError{Kind: ErrSliceIsBroken, Index: s.index, Range: s.rng}
}
