package procs

// Drive runs proc and its successors until one returns nil
func Drive[C any](ctx C, proc Proc[C]) error {
	for proc != nil {
		next, err := proc.Run(ctx)
		if err != nil {
			return err
		}
		// empty chains are done
		if procs, ok := next.(Procs[C]); ok && len(procs) == 0 {
			return nil
		}
		proc = next
	}
	return nil
}
