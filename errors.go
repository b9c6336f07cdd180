package inject

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeInvalidMapping indicates a concrete type does not satisfy its contract
	CodeInvalidMapping = "INVALID_MAPPING"

	// CodeInvalidRegistration indicates malformed registration options
	CodeInvalidRegistration = "INVALID_REGISTRATION"

	// CodeUnregisteredContract indicates Create was called for an unknown contract
	CodeUnregisteredContract = "UNREGISTERED_CONTRACT"

	// CodeMissingDependency indicates a constructor parameter has no specification
	CodeMissingDependency = "MISSING_DEPENDENCY"

	// CodeCyclicDependency indicates a contract reappeared on the active build stack
	CodeCyclicDependency = "CYCLIC_DEPENDENCY"

	// CodeBuildFailed indicates a factory or constructor returned an error
	CodeBuildFailed = "BUILD_FAILED"

	// CodeTypeMismatch indicates a built instance is not of the requested type
	CodeTypeMismatch = "TYPE_MISMATCH"
)

// Error is the error type returned by every operation in this package.
// Two errors match under errors.Is when their codes are equal.
type Error = errs.Error

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrInvalidMappingSentinel matches any invalid mapping error.
var ErrInvalidMappingSentinel = errs.NewError(CodeInvalidMapping, "invalid mapping", nil)

// ErrInvalidRegistrationSentinel matches any invalid registration error.
var ErrInvalidRegistrationSentinel = errs.NewError(CodeInvalidRegistration, "invalid registration", nil)

// ErrUnregisteredContractSentinel matches any unregistered contract error.
var ErrUnregisteredContractSentinel = errs.NewError(CodeUnregisteredContract, "unregistered contract", nil)

// ErrMissingDependencySentinel matches any missing dependency error.
var ErrMissingDependencySentinel = errs.NewError(CodeMissingDependency, "missing dependency", nil)

// ErrCyclicDependencySentinel matches any cyclic dependency error.
var ErrCyclicDependencySentinel = errs.NewError(CodeCyclicDependency, "cyclic dependency", nil)

// ErrBuildFailedSentinel matches any build failure.
var ErrBuildFailedSentinel = errs.NewError(CodeBuildFailed, "build failed", nil)

// ErrTypeMismatchSentinel matches any type mismatch error.
var ErrTypeMismatchSentinel = errs.NewError(CodeTypeMismatch, "type mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrInvalidMapping creates an error for a concrete type that does not satisfy its contract.
func ErrInvalidMapping(contract, concrete reflect.Type) *errs.Error {
	return errs.NewError(
		CodeInvalidMapping,
		fmt.Sprintf("type %s does not implement or derive from %s", typeName(concrete), typeName(contract)),
		nil,
	).WithContext("contract", typeName(contract)).
		WithContext("concrete", typeName(concrete)).(*errs.Error)
}

// ErrInvalidRegistration creates an error for malformed registration options.
func ErrInvalidRegistration(contract reflect.Type, reason string) *errs.Error {
	return errs.NewError(
		CodeInvalidRegistration,
		fmt.Sprintf("cannot register %s: %s", typeName(contract), reason),
		nil,
	).WithContext("contract", typeName(contract)).(*errs.Error)
}

// ErrUnregisteredContract creates an error for a Create call on an unknown contract.
func ErrUnregisteredContract(contract reflect.Type) *errs.Error {
	return errs.NewError(
		CodeUnregisteredContract,
		fmt.Sprintf("type is not registered: %s", typeName(contract)),
		nil,
	).WithContext("contract", typeName(contract)).(*errs.Error)
}

// ErrMissingDependency creates an error for a constructor parameter with no specification.
func ErrMissingDependency(param, requester reflect.Type) *errs.Error {
	return errs.NewError(
		CodeMissingDependency,
		fmt.Sprintf("dependency of %s is not registered: %s", typeName(requester), typeName(param)),
		nil,
	).WithContext("dependency", typeName(param)).
		WithContext("requester", typeName(requester)).(*errs.Error)
}

// ErrCyclicDependency creates an error describing the cycle, first and last element equal.
func ErrCyclicDependency(chain []reflect.Type) *errs.Error {
	names := make([]string, len(chain))
	for i, t := range chain {
		names[i] = typeName(t)
	}

	return errs.NewError(
		CodeCyclicDependency,
		"circular dependency detected: "+strings.Join(names, " -> "),
		nil,
	).WithContext("cycle", names).(*errs.Error)
}

// NewBuildError wraps a failure returned by a factory or constructor.
func NewBuildError(contract reflect.Type, cause error) *errs.Error {
	return errs.NewError(
		CodeBuildFailed,
		fmt.Sprintf("building %s", typeName(contract)),
		cause,
	).WithContext("contract", typeName(contract)).(*errs.Error)
}

// ErrTypeMismatch creates an error for an instance that is not of the requested type.
func ErrTypeMismatch(contract reflect.Type, actual any) *errs.Error {
	return errs.NewError(
		CodeTypeMismatch,
		fmt.Sprintf("%s type mismatch: got %T", typeName(contract), actual),
		nil,
	).WithContext("contract", typeName(contract)).
		WithContext("actual_type", fmt.Sprintf("%T", actual)).(*errs.Error)
}
