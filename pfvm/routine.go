package pfvm

// Routine is one cooperatively scheduled execution context
type Routine struct {
	alive bool

	// mailbox cells at [0, SpecialMemory), user cells after
	tape    []byte
	pointer int
	cursor  int32

	cache  []byte
	window int64
	// refill buffer, swapped with cache after a successful read
	spare []byte

	source *sharedSource
	length int64
	// set for routines created by Fork
	forked bool

	// remaining instructions of the current Step call, -1 for unbounded
	budget int32
}

func (r *Routine) Alive() bool {
	return r.alive
}

// Tape returns the cells of the routine. The slice aliases the routine memory.
func (r *Routine) Tape() []byte {
	return r.tape
}

func (r *Routine) Pointer() int {
	return r.pointer
}

func (r *Routine) Cursor() int32 {
	return r.cursor
}

func (r *Routine) SourceLen() int64 {
	return r.length
}

// SharesSource reports whether the routine was forked and references its origin's source
func (r *Routine) SharesSource() bool {
	return r.forked
}

func (r *Routine) reset(special int) {
	clear(r.tape)
	r.pointer = special
	r.cursor = 0
	r.forked = false
	r.budget = 0
}
