package dispatcher

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	contractx "github.com/pawquote/quote-agent/agent/contract"
	nodex "github.com/pawquote/quote-agent/agent/nodes"
)

func (d *Dispatcher) compileDispatchGraph(
	ctx context.Context,
) (compose.Runnable[contractx.IntentCall, contractx.Result], error) {
	graph := compose.NewGraph[contractx.IntentCall, contractx.Result]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in contractx.IntentCall) (*nodex.GraphState, error) {
			return nodex.ValidateRequest(in, d.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_or_create_state",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.LoadOrCreateState(ctx, in, d.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_state: %w", err)
	}

	if err := graph.AddLambdaNode("execute_intent",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return d.executeIntent(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node execute_intent: %w", err)
	}

	if err := graph.AddLambdaNode("validate_and_save_state",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ValidateAndSaveState(ctx, in, d.store)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_and_save_state: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_response",
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (contractx.Result, error) {
			return nodex.FinalizeResponse(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_response: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_or_create_state"},
		{"load_or_create_state", "execute_intent"},
		{"execute_intent", "validate_and_save_state"},
		{"validate_and_save_state", "finalize_response"},
		{"finalize_response", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("dispatcher.dispatch"))
	if err != nil {
		return nil, fmt.Errorf("compile dispatch graph: %w", err)
	}
	return runner, nil
}

func (d *Dispatcher) executeIntent(in *nodex.GraphState) (*nodex.GraphState, error) {
	switch in.Call.Intent {
	case contractx.IntentLookupEntity:
		return nodex.LookupEntity(in, d.catalog)
	case contractx.IntentConfirmProfile:
		return nodex.ConfirmProfile(in, d.catalog)
	case contractx.IntentRequestQuote:
		return nodex.RequestQuote(in, d.catalog, d.issuer)
	case contractx.IntentListPlans:
		return nodex.ListPlans(in, d.catalog)
	default:
		return nil, fmt.Errorf("%w: %q", contractx.ErrUnknownIntent, in.Call.Intent)
	}
}
