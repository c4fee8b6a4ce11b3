package graph

import "textgraph/pkg/common"

// MapLabel folds a recognizer's raw label into the canonical entity type
// enumeration. It is total: every input maps to a defined type, and labels
// outside the known vocabulary fall back to EntityTypeOther.
func MapLabel(rawLabel string) common.EntityType {
	switch rawLabel {
	case "PER":
		return common.EntityTypePerson
	case "LOC":
		return common.EntityTypeLocation
	case "ORG", "MISC":
		return common.EntityTypeOther
	default:
		return common.EntityTypeOther
	}
}
