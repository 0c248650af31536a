package procs

// Proc is one resumable stage. Run returns the proc to run next, or nil when the stage is done
type Proc[C any] interface {
	Run(ctx C) (Proc[C], error)
}
