package inject

import "context"

// Hook intercepts instance construction. Hooks run only when an instance is
// actually built, never on a cache hit.
type Hook interface {
	// BeforeBuild is called before building an instance.
	// Return error to abort the build.
	BeforeBuild(ctx context.Context, spec *Specification) error

	// AfterBuild is called after building an instance.
	// Called even if the build failed (instance and err may both be set).
	AfterBuild(ctx context.Context, spec *Specification, instance any, err error) error
}

// hookChain manages multiple hooks.
type hookChain struct {
	hooks []Hook
}

// beforeBuild calls BeforeBuild on all hooks.
func (h *hookChain) beforeBuild(ctx context.Context, spec *Specification) error {
	for _, hook := range h.hooks {
		if err := hook.BeforeBuild(ctx, spec); err != nil {
			return err
		}
	}
	return nil
}

// afterBuild calls AfterBuild on all hooks.
func (h *hookChain) afterBuild(ctx context.Context, spec *Specification, instance any, err error) error {
	for _, hook := range h.hooks {
		if hookErr := hook.AfterBuild(ctx, spec, instance, err); hookErr != nil {
			return hookErr
		}
	}
	return nil
}

// HookFuncs wraps functions as a Hook.
type HookFuncs struct {
	BeforeBuildFunc func(ctx context.Context, spec *Specification) error
	AfterBuildFunc  func(ctx context.Context, spec *Specification, instance any, err error) error
}

// BeforeBuild implements Hook.
func (f *HookFuncs) BeforeBuild(ctx context.Context, spec *Specification) error {
	if f.BeforeBuildFunc != nil {
		return f.BeforeBuildFunc(ctx, spec)
	}
	return nil
}

// AfterBuild implements Hook.
func (f *HookFuncs) AfterBuild(ctx context.Context, spec *Specification, instance any, err error) error {
	if f.AfterBuildFunc != nil {
		return f.AfterBuildFunc(ctx, spec, instance, err)
	}
	return nil
}
