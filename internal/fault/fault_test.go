package fault

import (
	"strings"
	"testing"
)

func raiseAndRecover(kind Kind) (err error) {
	defer Recover(&err)
	Raise(kind, "test", 0x4020, 0x7F)
	return nil
}

func TestRecoverConvertsFault(t *testing.T) {
	err := raiseAndRecover(IllegalOpcode)
	if err == nil {
		t.Fatal("expected an error from a raised fault")
	}

	fe, ok := As(err)
	if !ok {
		t.Fatalf("As(%v) did not find a fault", err)
	}
	if fe.Kind != IllegalOpcode {
		t.Errorf("Kind = %v, want %v", fe.Kind, IllegalOpcode)
	}
	if fe.Address != 0x4020 || fe.Value != 0x7F {
		t.Errorf("fault = %+v, want address $4020 value $7F", fe)
	}
	if !strings.Contains(err.Error(), "illegal opcode at $4020") {
		t.Errorf("message %q does not describe the fault", err.Error())
	}
}

func TestRecoverRepanicsForeignValues(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()

	func() (err error) {
		defer Recover(&err)
		panic("boom")
	}()
	t.Error("foreign panic was swallowed")
}

func TestRecoverWithoutPanic(t *testing.T) {
	var err error
	func() {
		defer Recover(&err)
	}()
	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{BusRange, "bus range"},
		{IllegalOpcode, "illegal opcode"},
		{ReadOnlyWrite, "read-only write"},
		{IllegalAccess, "illegal access"},
		{Kind(42), "fault(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}
