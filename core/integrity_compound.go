package core

import "github.com/smarty/mcinstall/contracts"

type CompoundIntegrityCheck struct {
	inners []contracts.IntegrityCheck
}

func NewCompoundIntegrityCheck(inners ...contracts.IntegrityCheck) *CompoundIntegrityCheck {
	return &CompoundIntegrityCheck{inners: inners}
}

func (this *CompoundIntegrityCheck) Verify(artifact contracts.Artifact, localPath string) error {
	for _, inner := range this.inners {
		err := inner.Verify(artifact, localPath)
		if err != nil {
			return err
		}
	}
	return nil
}
