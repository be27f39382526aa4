package quadfx

import (
	"cmp"
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Control represents an editable parameter surfaced by the properties panel.
// When the value is modified via ChangeValue the OnChange callback runs first
// and the new value is only kept if the callback succeeds.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

// ControlOrdered maps to a slider.
type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	OnChange    func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}
func (co *ControlOrdered[T]) ActualValue() any { return co.Value }
func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, co.Value)
	}
	if v < co.Min || v > co.Max {
		return fmt.Errorf("%w: new value %v exceeds limits %v..%v", ErrInvalidParameter, v, co.Min, co.Max)
	}
	if co.OnChange != nil {
		if err := co.OnChange(v); err != nil {
			return err
		}
	}
	co.Value = v
	return nil
}

// ControlBool maps to a checkbox.
type ControlBool struct {
	Name        string
	Description string
	Value       bool
	OnChange    func(bool) error
}

func (cb *ControlBool) Describe() (name, description string) {
	return cb.Name, cb.Description
}
func (cb *ControlBool) ActualValue() any { return cb.Value }
func (cb *ControlBool) ChangeValue(newValue any) error {
	v, ok := newValue.(bool)
	if !ok {
		return fmt.Errorf("new value %T not of type bool", newValue)
	}
	if cb.OnChange != nil {
		if err := cb.OnChange(v); err != nil {
			return err
		}
	}
	cb.Value = v
	return nil
}

// ControlVec2 maps to a two component slider. Min and Max bound every component.
type ControlVec2 struct {
	Name        string
	Description string
	Value       ms2.Vec
	Min, Max    float32
	OnChange    func(ms2.Vec) error
}

func (cv *ControlVec2) Describe() (name, description string) {
	return cv.Name, cv.Description
}
func (cv *ControlVec2) ActualValue() any { return cv.Value }
func (cv *ControlVec2) ChangeValue(newValue any) error {
	v, ok := newValue.(ms2.Vec)
	if !ok {
		return fmt.Errorf("new value %T not of type ms2.Vec", newValue)
	}
	if !inRange(cv.Min, cv.Max, v.X, v.Y) {
		return fmt.Errorf("%w: new value %v exceeds limits %v..%v", ErrInvalidParameter, v, cv.Min, cv.Max)
	}
	if cv.OnChange != nil {
		if err := cv.OnChange(v); err != nil {
			return err
		}
	}
	cv.Value = v
	return nil
}

// ControlVec3 maps to a three component slider. Min and Max bound every component.
type ControlVec3 struct {
	Name        string
	Description string
	Value       ms3.Vec
	Min, Max    float32
	OnChange    func(ms3.Vec) error
}

func (cv *ControlVec3) Describe() (name, description string) {
	return cv.Name, cv.Description
}
func (cv *ControlVec3) ActualValue() any { return cv.Value }
func (cv *ControlVec3) ChangeValue(newValue any) error {
	v, ok := newValue.(ms3.Vec)
	if !ok {
		return fmt.Errorf("new value %T not of type ms3.Vec", newValue)
	}
	if !inRange(cv.Min, cv.Max, v.X, v.Y, v.Z) {
		return fmt.Errorf("%w: new value %v exceeds limits %v..%v", ErrInvalidParameter, v, cv.Min, cv.Max)
	}
	if cv.OnChange != nil {
		if err := cv.OnChange(v); err != nil {
			return err
		}
	}
	cv.Value = v
	return nil
}

func inRange(lo, hi float32, vals ...float32) bool {
	for _, v := range vals {
		if v < lo || v > hi || v != v {
			return false
		}
	}
	return true
}
