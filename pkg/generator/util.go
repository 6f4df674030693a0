package generator

// seedToPtrInt32 は *int64 を SDK 用の *int32 に変換するのだ。
// GenerateContentConfig の Seed は int32 を期待しているための調整なのだ。
func seedToPtrInt32(s *int64) *int32 {
	if s == nil {
		return nil
	}
	v := int32(*s)
	return &v
}

// seedOrDefault は nil の場合に DefaultSeed を返すのだ。
func seedOrDefault(s *int64) int64 {
	if s == nil {
		return DefaultSeed
	}
	return *s
}
