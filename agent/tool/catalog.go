// Package tool exposes the dispatcher operations as an eino tool catalog so
// a tool-calling agent can drive the quoting engine. The executor translates
// loosely typed tool arguments into the dispatcher's typed intent calls.
package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/pawquote/quote-agent/agent/contract"
)

const (
	ToolLookupEntity   = string(contractx.IntentLookupEntity)
	ToolConfirmProfile = string(contractx.IntentConfirmProfile)
	ToolRequestQuote   = string(contractx.IntentRequestQuote)
	ToolListPlans      = string(contractx.IntentListPlans)
)

type Executor func(ctx context.Context, sessionID, tool string, args map[string]any) (contractx.Result, error)

func Build(d contractx.Dispatcher) ([]*schema.ToolInfo, Executor) {
	return Infos(), NewExecutor(d)
}

// Infos describes the four operations in the shape a tool-calling model
// expects. Descriptions tell the model when to call, not how it works.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolLookupEntity,
			Desc: "Look up a dog breed by name and fetch its insurance risk profile. Call when the user names their dog's breed.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"name": {Type: schema.String, Desc: "Breed name as the user said it", Required: true},
			}),
		},
		{
			Name: ToolConfirmProfile,
			Desc: "Record details about the user's dog. Only pass fields the user actually stated; omitted fields keep their current value.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"pet_name":       {Type: schema.String, Desc: "The dog's name", Required: false},
				"breed_name":     {Type: schema.String, Desc: "The dog's breed", Required: false},
				"age_years":      {Type: schema.Number, Desc: "The dog's age in years, fractions allowed", Required: false},
				"has_conditions": {Type: schema.Boolean, Desc: "Whether the dog has pre-existing conditions", Required: false},
			}),
		},
		{
			Name: ToolRequestQuote,
			Desc: "Produce an insurance quote for the recorded dog profile. Call when the user asks for a price or quote.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"plan_id": {Type: schema.String, Desc: "Plan tier id: basic, standard, premium, or comprehensive. Defaults to standard.", Required: false},
			}),
		},
		{
			Name: ToolListPlans,
			Desc: "List the available insurance plan tiers with prices and coverage. Call when the user asks what plans exist.",
		},
	}
}

func NewExecutor(d contractx.Dispatcher) Executor {
	return func(ctx context.Context, sessionID, tool string, args map[string]any) (contractx.Result, error) {
		call := contractx.IntentCall{
			SessionID: sessionID,
			Intent:    contractx.Intent(tool),
		}
		switch tool {
		case ToolLookupEntity:
			name, err := stringArg(args, "name")
			if err != nil {
				return contractx.Result{}, err
			}
			call.Lookup = &contractx.LookupEntityArgs{Name: name}
		case ToolConfirmProfile:
			confirm, err := confirmArgs(args)
			if err != nil {
				return contractx.Result{}, err
			}
			call.Confirm = confirm
		case ToolRequestQuote:
			planID, _ := args["plan_id"].(string)
			call.Quote = &contractx.RequestQuoteArgs{PlanID: planID}
		case ToolListPlans:
		default:
			return contractx.Result{}, fmt.Errorf("%w: tool %q", contractx.ErrUnknownIntent, tool)
		}
		return d.Dispatch(ctx, call)
	}
}

func confirmArgs(args map[string]any) (*contractx.ConfirmProfileArgs, error) {
	out := &contractx.ConfirmProfileArgs{}
	if raw, ok := args["pet_name"]; ok {
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: pet_name must be a string", contractx.ErrValidation)
		}
		out.PetName = &v
	}
	if raw, ok := args["breed_name"]; ok {
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%w: breed_name must be a string", contractx.ErrValidation)
		}
		out.BreedName = &v
	}
	if raw, ok := args["age_years"]; ok {
		v, err := numberArg(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: age_years must be a number", contractx.ErrValidation)
		}
		out.AgeYears = &v
	}
	if raw, ok := args["has_conditions"]; ok {
		v, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: has_conditions must be a boolean", contractx.ErrValidation)
		}
		out.HasConditions = &v
	}
	return out, nil
}

func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", contractx.ErrValidation, key)
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", contractx.ErrValidation, key)
	}
	return v, nil
}

// numberArg tolerates the integer types JSON decoders and models produce.
func numberArg(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}
