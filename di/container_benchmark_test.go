package di_test

import (
	"testing"

	"github.com/sghaida/wired/di"
)

/*
   Shared helpers (NOT counted in benchmarks)
*/

func newBenchContainer(b *testing.B) *di.Container {
	b.Helper()
	var n counts
	c, err := di.New(scenarioTable(&n))
	if err != nil {
		b.Fatal(err)
	}
	return c
}

/*
   Benchmarks
*/

func BenchmarkNewTable(b *testing.B) {
	var n counts
	for i := 0; i < b.N; i++ {
		_, _ = di.NewTable(readerBinding(&n), parserBinding(&n), serviceBinding(&n))
	}
}

func BenchmarkResolve_ColdGraph(b *testing.B) {
	var n counts
	tbl := scenarioTable(&n)
	service := di.TypeOf[Service]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c, _ := di.New(tbl)
		_, _ = c.Resolve(service)
	}
}

func BenchmarkResolve_CacheHit(b *testing.B) {
	c := newBenchContainer(b)
	service := di.TypeOf[Service]()
	_, _ = c.Resolve(service)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Resolve(service)
	}
}

func BenchmarkGet_CacheHitParallel(b *testing.B) {
	c := newBenchContainer(b)
	_ = di.MustGet[Service](c)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = di.Get[Service](c)
		}
	})
}

func BenchmarkResolve_Unbound(b *testing.B) {
	c := newBenchContainer(b)
	a := di.TypeOf[A]()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Resolve(a)
	}
}

func BenchmarkValidate(b *testing.B) {
	var n counts
	tbl := scenarioTable(&n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tbl.Validate()
	}
}
