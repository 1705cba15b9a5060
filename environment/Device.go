package environment

import (
	"fmt"
	"strconv"
	"strings"

	"gorgonia.org/tensor"
)

// Device identifies the compute device on which environment tensors
// are materialized. A Device is an explicit configuration value
// threaded through construction rather than ambient state.
//
// Devices are parsed from tokens such as "cpu", "cuda", or "cuda:1".
// Accelerator tokens parse successfully, but this build can only
// materialize tensors on the CPU; requesting the engine of an
// accelerator device fails, so a misconfigured device aborts
// construction rather than a rollout.
type Device struct {
	kind  string
	index int
}

// CPU returns the CPU device
func CPU() Device {
	return Device{kind: "cpu", index: -1}
}

// NewDevice parses a device token
func NewDevice(token string) (Device, error) {
	kind, indexStr, hasIndex := strings.Cut(token, ":")

	index := -1
	if hasIndex {
		var err error
		index, err = strconv.Atoi(indexStr)
		if err != nil || index < 0 {
			return Device{}, fmt.Errorf("newDevice: illegal device index "+
				"%q in token %q", indexStr, token)
		}
	}

	switch kind {
	case "cpu":
		if hasIndex {
			return Device{}, fmt.Errorf("newDevice: cpu device takes no "+
				"index, got %q", token)
		}
		return CPU(), nil

	case "cuda":
		if !hasIndex {
			index = 0
		}
		return Device{kind: "cuda", index: index}, nil

	default:
		return Device{}, fmt.Errorf("newDevice: unknown device kind %q",
			kind)
	}
}

// IsCPU returns whether the device is the CPU
func (d Device) IsCPU() bool {
	return d.kind == "cpu"
}

// Engine returns the tensor engine that materializes tensors on the
// device
func (d Device) Engine() (tensor.Engine, error) {
	if !d.IsCPU() {
		return nil, fmt.Errorf("engine: device %v is not available in "+
			"this build", d)
	}
	return tensor.StdEng{}, nil
}

// String implements the fmt.Stringer interface
func (d Device) String() string {
	if d.index < 0 {
		return d.kind
	}
	return fmt.Sprintf("%v:%d", d.kind, d.index)
}
