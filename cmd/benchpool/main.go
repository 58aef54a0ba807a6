// Command benchpool compares running a batch of slow tasks sequentially
// against running them on a worker pool.
package main

import (
	"fmt"
	"sync"
	"time"
)

const (
	taskCount  = 8
	numWorkers = 16
	taskDelay  = 100 * time.Millisecond
)

// slowSquare simulates a blocking unit of work.
func slowSquare(n int) int {
	time.Sleep(taskDelay)
	return n * n
}

func runSequential(inputs []int) ([]int, time.Duration) {
	start := time.Now()
	results := make([]int, len(inputs))
	for i, n := range inputs {
		results[i] = slowSquare(n)
	}
	return results, time.Since(start)
}

func runPooled(inputs []int) ([]int, time.Duration) {
	start := time.Now()
	results := make([]int, len(inputs))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = slowSquare(inputs[i])
			}
		}()
	}

	for i := range inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, time.Since(start)
}

func main() {
	inputs := make([]int, taskCount)
	for i := range inputs {
		inputs[i] = i + 1
	}

	seqResults, seqElapsed := runSequential(inputs)
	fmt.Printf("sequential: results=%v elapsed=%s\n", seqResults, seqElapsed)

	poolResults, poolElapsed := runPooled(inputs)
	fmt.Printf("pool (%d workers): results=%v elapsed=%s\n", numWorkers, poolResults, poolElapsed)
}
