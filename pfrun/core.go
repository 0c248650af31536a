package pfrun

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/reusee/pf/pfvm"
)

// Core is the post-mortem record of a faulted run
type Core struct {
	Code  pfvm.Code
	Polls int
	State pfvm.State
}

var coreEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("pfrun: create CBOR enc mode: %v", err))
	}
	coreEncMode = em
}

func MarshalCore(core Core) ([]byte, error) {
	return coreEncMode.Marshal(core)
}

func UnmarshalCore(data []byte) (Core, error) {
	var core Core
	if err := cbor.Unmarshal(data, &core); err != nil {
		return core, fmt.Errorf("unmarshal core: %w", err)
	}
	return core, nil
}

// WriteCore writes core to path atomically
func WriteCore(path string, core Core) error {
	data, err := MarshalCore(core)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func ReadCore(path string) (Core, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Core{}, err
	}
	return UnmarshalCore(data)
}
