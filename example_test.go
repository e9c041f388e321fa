package vtpool_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/giantswarm/vtpool"
)

func Example() {
	pool := vtpool.New(vtpool.WithName("example"))
	if err := pool.Start(); err != nil {
		fmt.Println("start:", err)
		return
	}

	var wg sync.WaitGroup
	results := make([]int, 3)
	for i := range results {
		wg.Add(1)
		_ = pool.Execute(func(context.Context) {
			defer wg.Done()
			results[i] = i * i
		})
	}
	wg.Wait()

	_ = pool.Stop()
	if err := pool.Join(context.Background()); err != nil {
		fmt.Println("join:", err)
		return
	}

	fmt.Println(results, pool.State(), pool.IsLowOnResources())
	// Output: [0 1 4] STOPPED false
}

func ExampleCapacity() {
	fmt.Println(vtpool.Unbounded(), vtpool.Bounded(16))
	fmt.Println(vtpool.New().ThreadCount() == vtpool.UnboundedThreads)
	// Output:
	// unbounded bounded(16)
	// true
}
