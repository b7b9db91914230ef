package validator

import (
	"testing"
)

// BenchmarkValidate_TypeCaching 类型缓存命中后的场景规则验证
func BenchmarkValidate_TypeCaching(b *testing.B) {
	v := New()
	s := &testStation{StationID: "ABC123", Zip: "80202", DRID: "org-1"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Validate(s, SceneCreate)
	}
}

// BenchmarkValidate_Tags struct tag 方式
func BenchmarkValidate_Tags(b *testing.B) {
	v := New()
	p := &testPort{PortID: "P1", PortType: "CCS"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Validate(p, SceneCreate)
	}
}

// BenchmarkVar 单字段规则
func BenchmarkVar(b *testing.B) {
	v := New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = v.Var("39.739236", "numeric,decimals=6,latitude")
	}
}

func BenchmarkValidate_Parallel(b *testing.B) {
	v := New()
	s := &testStation{StationID: "ABC 123", Zip: "8020"}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = v.Validate(s, SceneCreate)
		}
	})
}
