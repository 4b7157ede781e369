package resolve

import (
	"fmt"

	"rpc-dumper/internal/diagnostic"
	"rpc-dumper/internal/metadata"
)

// ExpandPolymorphic registers every top-level type whose declared base type
// is ext, whether or not anything else reaches it. The scan covers the whole
// universe on each call; already registered types are skipped by Register.
func ExpandPolymorphic(h Registrar, ext *metadata.TypeDef) error {
	base := ext.FullName()

	var found int

	for _, t := range h.Provider().TopLevelTypes() {
		if !t.DerivesFrom(base) {
			continue
		}

		found++

		if err := h.Register(t); err != nil {
			return fmt.Errorf("subtype %s of %s: %w", t.FullName(), base, err)
		}
	}

	h.Diagnostics().AddInfo(diagnostic.CodePolymorphic,
		fmt.Sprintf("%d subtypes found", found), base, "")

	return nil
}
