package partitioned

import (
	"context"
	"fmt"
	"strings"
)

func Example() {
	// construct a producer from a slice
	words := Produce(strings.Fields("apple avocado banana blueberry blackberry cherry apricot"))

	// partition words by their first letter, then count the words in each partition
	runs := RunLengths(words, func(word string) string {
		return word[:1]
	})

	// perform a reduction to collect the runs into a slice
	result, _ := ReduceSlice(context.Background(), runs)

	fmt.Printf("%+v\n", result)
	// Output: [{Key:a Count:2} {Key:b Count:3} {Key:c Count:1} {Key:a Count:1}]
}

func ExamplePartitionBy() {
	parts := PartitionBy(seqOf(1, 2, 2, 3, 3, 3), func(n int) int {
		return n
	})

	for part, err := range parts.All() {
		if err != nil {
			fmt.Println(err)
			return
		}

		fmt.Println(part.Key(), part.Collect())
	}
	// Output:
	// 1 [1]
	// 2 [2 2]
	// 3 [3 3 3]
}

func ExamplePartitionBy_notConsumed() {
	parts := PartitionBy(seqOf(1, 1, 2), func(n int) int {
		return n
	})
	defer parts.Stop()

	// request the first partition, but do not consume it
	_, _, _ = parts.Next()

	_, _, err := parts.Next()
	fmt.Println(err)
	// Output: partition with key 1 not consumed
}

func ExamplePartitionStream() {
	ctx := context.Background()

	parts := PartitionStream(ctx, Produce([]int{10, 11, 20, 30, 31}), func(n int) int {
		return n / 10
	})
	defer parts.Close()

	for {
		part, ok, err := parts.Next(ctx)
		if err != nil || !ok {
			return
		}

		elems, err := part.Collect(ctx)
		if err != nil {
			return
		}

		fmt.Println(part.Key(), elems)
	}
	// Output:
	// 1 [10 11]
	// 2 [20]
	// 3 [30 31]
}
