package cmds

// Var defines name, and its aliases, on the global executor
func Var[T any](name string, aliases ...string) *T {
	return ExecutorVar[T](GlobalExecutor, name, aliases...)
}

func ExecutorVar[T any](executor *Executor, name string, aliases ...string) *T {
	var value T

	// set
	executor.Define(name, Func(func(v T) {
		value = v
	}).Alias(aliases...))

	// set zero
	var zero T
	executor.Define(name+".", Func(func() {
		value = zero
	}))

	return &value
}

func Switch(name string) *bool {
	return ExecutorSwitch(GlobalExecutor, name)
}

func ExecutorSwitch(executor *Executor, name string) *bool {
	var value bool

	// set true
	executor.Define(name, Func(func() {
		value = true
	}))

	// set false
	executor.Define("!"+name, Func(func() {
		value = false
	}))

	return &value
}

func Collect[T any](name string) *[]T {
	return ExecutorCollect[T](GlobalExecutor, name)
}

func ExecutorCollect[T any](executor *Executor, name string) *[]T {
	var value []T
	// append
	executor.Define(name, Func(func(v T) {
		value = append(value, v)
	}))
	return &value
}
