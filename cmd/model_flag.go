package cmd

import (
	"fmt"

	"github.com/retrobit-labs/chippy/internal/model"
)

// parseModel maps the --model flag's string value to a model.Model.
func parseModel(name string) (model.Model, error) {
	switch name {
	case "vip", "cosmac-vip":
		return model.CosmacVip, nil
	case "schip", "schip-legacy", "superchip":
		return model.LegacySuperChip, nil
	case "schip-modern", "superchip-modern", "octo":
		return model.ModernSuperChip, nil
	case "xochip", "xo-chip":
		return model.XoChip, nil
	default:
		return 0, fmt.Errorf("unknown --model %q (want vip, schip, schip-modern, or xochip)", name)
	}
}
