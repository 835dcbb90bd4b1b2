package gocommand

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-command"
)

type okMessage struct{}

func (okMessage) Type() string { return "awards.command.ok" }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "" }

type failingMessage struct{}

func (failingMessage) Type() string { return "awards.command.fail" }

func (failingMessage) Validate() error { return errors.New("invalid payload") }

type dispatchMessage struct {
	ID string
}

func (dispatchMessage) Type() string { return "awards.command.test" }

type lookupMessage struct {
	DocID string
}

func (lookupMessage) Type() string { return "awards.query.test" }

func TestValidateMessageContract(t *testing.T) {
	if err := ValidateMessageContract(okMessage{}); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := ValidateMessageContract(invalidMessage{}); err == nil {
		t.Fatalf("expected empty type to fail contract validation")
	}
	if err := ValidateMessageContract(failingMessage{}); err == nil {
		t.Fatalf("expected Validate() failure to bubble")
	}
}

func TestRegistryAndDispatchWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())
	executed := 0
	customResolverCalled := 0

	cmd := command.CommandFunc[dispatchMessage](func(context.Context, dispatchMessage) error {
		executed++
		return nil
	})

	subscription, err := RegisterAndSubscribe(adapter, cmd)
	if err != nil {
		t.Fatalf("register and subscribe: %v", err)
	}
	defer subscription.Unsubscribe()

	if err := adapter.AddResolver("custom", func(any, command.CommandMeta, *command.Registry) error {
		customResolverCalled++
		return nil
	}); err != nil {
		t.Fatalf("add resolver: %v", err)
	}
	if !adapter.HasResolver("custom") {
		t.Fatalf("expected custom resolver to be registered")
	}
	if err := adapter.Initialize(); err != nil {
		t.Fatalf("initialize registry: %v", err)
	}
	if customResolverCalled == 0 {
		t.Fatalf("expected resolver hook to run during initialization")
	}

	if err := Dispatch(context.Background(), dispatchMessage{ID: "m1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if executed != 1 {
		t.Fatalf("expected command execution count=1, got %d", executed)
	}
}

func TestRegisterAndSubscribeQueryWiring(t *testing.T) {
	adapter := NewRegistryAdapter(command.NewRegistry())

	qry := command.QueryFunc[lookupMessage, string](func(_ context.Context, msg lookupMessage) (string, error) {
		return "result:" + msg.DocID, nil
	})

	subscription, err := RegisterAndSubscribeQuery(adapter, qry)
	if err != nil {
		t.Fatalf("register and subscribe query: %v", err)
	}
	defer subscription.Unsubscribe()

	result, err := Query[lookupMessage, string](context.Background(), lookupMessage{DocID: "cred_1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if result != "result:cred_1" {
		t.Fatalf("expected query result passthrough, got %q", result)
	}
}

func TestRegisterAndSubscribeRequiresDependencies(t *testing.T) {
	cmd := command.CommandFunc[okMessage](func(context.Context, okMessage) error { return nil })
	if _, err := RegisterAndSubscribe(nil, cmd); err == nil {
		t.Fatalf("expected error for nil adapter")
	}

	adapter := NewRegistryAdapter(nil)
	if adapter.Registry() == nil {
		t.Fatalf("expected adapter to default its registry")
	}
	if _, err := RegisterAndSubscribe[okMessage](adapter, nil); err == nil {
		t.Fatalf("expected error for nil command")
	}
}
