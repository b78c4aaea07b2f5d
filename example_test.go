package iocboot_test

import (
	"fmt"
	"reflect"

	"github.com/Station-Manager/iocboot"
	"github.com/Station-Manager/iocboot/registry"
)

type greeter struct {
	Greeting string
}

func (g *greeter) Initialize() error {
	g.Greeting = "hello from the container"
	return nil
}

type announcingInterceptor struct{}

func (announcingInterceptor) BeforeInit(instance any, name string) (any, error) {
	fmt.Printf("before init: %s\n", name)
	return instance, nil
}

func (announcingInterceptor) AfterInit(instance any, name string) (any, error) {
	fmt.Printf("after init: %s\n", name)
	return instance, nil
}

type exampleContext struct {
	listeners []iocboot.Listener
}

func (c *exampleContext) AddListener(listener iocboot.Listener) {
	c.listeners = append(c.listeners, listener)
}

func Example() {
	reg := registry.New()

	if err := reg.Define("greeter", reflect.TypeOf(greeter{})); err != nil {
		panic(err)
	}
	if err := reg.Define("announcer", reflect.TypeOf(announcingInterceptor{})); err != nil {
		panic(err)
	}

	delegate := iocboot.New()
	if err := delegate.InvokeFactoryProcessors(reg, nil); err != nil {
		panic(err)
	}
	if err := delegate.RegisterInterceptors(reg, &exampleContext{}); err != nil {
		panic(err)
	}

	instance, err := registry.ResolveAs[*greeter](reg, "greeter")
	if err != nil {
		panic(err)
	}
	fmt.Println(instance.Greeting)

	// Output:
	// before init: greeter
	// after init: greeter
	// hello from the container
}
