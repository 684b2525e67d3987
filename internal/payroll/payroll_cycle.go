package payroll

import (
	payrollerrors "go-payroll/internal/payroll/errors"
)

type CycleState string

const (
	StateDraft      CycleState = "DRAFT"
	StateCalculated CycleState = "CALCULATED"
	StateFinalized  CycleState = "FINALIZED"
	StatePaid       CycleState = "PAID"
	StateLocked     CycleState = "LOCKED"
)

type Operation string

const (
	OpCalculate Operation = "calculate"
	OpFinalize  Operation = "finalize"
	OpDisburse  Operation = "disburse"
	OpLock      Operation = "lock"
)

type cycleRule struct {
	from []CycleState
	to   CycleState
}

// cycleRules is the whole state machine. Calculate is the only operation
// that may repeat; everything else moves one step forward.
var cycleRules = map[Operation]cycleRule{
	OpCalculate: {from: []CycleState{StateDraft, StateCalculated}, to: StateCalculated},
	OpFinalize:  {from: []CycleState{StateCalculated}, to: StateFinalized},
	OpDisburse:  {from: []CycleState{StateFinalized}, to: StatePaid},
	OpLock:      {from: []CycleState{StatePaid}, to: StateLocked},
}

// OperationFor maps a requested target state to the operation reaching it.
func OperationFor(target CycleState) (Operation, error) {
	for op, rule := range cycleRules {
		if rule.to == target {
			return op, nil
		}
	}
	return "", payrollerrors.ErrInvalidTargetState
}

// CheckTransition validates op against the current state and returns the
// resulting state. errorCount is the failure count of the last calculation.
func CheckTransition(current CycleState, op Operation, errorCount int) (CycleState, error) {
	rule, ok := cycleRules[op]
	if !ok {
		return current, payrollerrors.ErrInvalidTransition
	}
	if current == StateLocked {
		return current, payrollerrors.ErrCycleLocked
	}
	if !containsState(rule.from, current) {
		return current, payrollerrors.ErrInvalidTransition
	}
	if op == OpFinalize && errorCount > 0 {
		return current, payrollerrors.ErrFinalizeWithErrors
	}
	return rule.to, nil
}

func containsState(states []CycleState, s CycleState) bool {
	for _, v := range states {
		if v == s {
			return true
		}
	}
	return false
}
