package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/pawquote/quote-agent/agent/contract"
)

func FinalizeResponse(in *GraphState) (contractx.Result, error) {
	if in == nil {
		return contractx.Result{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}
	if in.Result.Outcome == "" {
		return contractx.Result{}, fmt.Errorf("%w: executor produced no outcome", contractx.ErrValidation)
	}
	if strings.TrimSpace(in.Result.Message) == "" {
		return contractx.Result{}, fmt.Errorf("%w: executor produced empty message", contractx.ErrValidation)
	}
	return in.Result, nil
}
