package calculator

// Fault records why the calculator is in the error state.
type Fault int

const (
	FaultNone Fault = iota
	FaultDivideByZero
	// FaultOverflow is entered when a result is not a finite float64.
	FaultOverflow
)

func (f Fault) String() string {
	switch f {
	case FaultDivideByZero:
		return "divide by zero"
	case FaultOverflow:
		return "overflow"
	default:
		return "none"
	}
}

// Phase is the logical state of the calculator, derived from its fields.
type Phase int

const (
	// PhaseIdle is the cleared state: "0" with nothing pending.
	PhaseIdle Phase = iota
	// PhaseAccumulating means an operand is being typed.
	PhaseAccumulating
	// PhaseOperationPending means an operator was just chosen and the next
	// digit starts the second operand.
	PhaseOperationPending
	// PhaseResult means the current operand holds a computed result.
	PhaseResult
	// PhaseError means a computation faulted; the current operand reads "Error".
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAccumulating:
		return "accumulating"
	case PhaseOperationPending:
		return "operation_pending"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the fault by name, so it reads well in JSON.
func (f Fault) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// MarshalText encodes the phase by name, so it reads well in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
