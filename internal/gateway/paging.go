package gateway

import (
	"fmt"

	"github.com/wolfeidau/gwctl/internal/pipeline"
	"github.com/wolfeidau/gwctl/internal/util"
)

// maxPageSize is the largest page API Gateway returns.
const maxPageSize = 500

// normalizeLimit is a pre-load hook converting a CLI bound int limit into the
// int32 the SDK expects, rejecting values the service would refuse.
func normalizeLimit(p pipeline.Params) (pipeline.Params, error) {
	raw, ok := p.Get(ParamLimit)
	if !ok {
		return p, nil
	}

	var limit int32
	switch v := raw.(type) {
	case int:
		limit = util.AsInt32(v)
	case int32:
		limit = v
	default:
		return p, fmt.Errorf("limit must be an integer, got %T", raw)
	}

	if limit < 1 || limit > maxPageSize {
		return p, fmt.Errorf("limit must be between 1 and %d, got %d", maxPageSize, limit)
	}

	p.Set(ParamLimit, limit)
	return p, nil
}
