package tokens

import "testing"

func TestKind(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", Tiktoken, false},
		{"tiktoken", Tiktoken, false},
		{"TikToken", Tiktoken, false},
		{"huggingface", HuggingFace, false},
		{" HF ", HuggingFace, false},
		{"sentencepiece", "", true},
	}
	for _, tt := range tests {
		got, err := Kind(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Kind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Kind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoad_UnsupportedKind(t *testing.T) {
	if _, err := Load(Options{Kind: "bpe"}); err == nil {
		t.Error("expected an error for an unsupported tokenizer")
	}
}

func TestUninitializedCountersCountZero(t *testing.T) {
	var nilTik *TiktokenCounter
	counters := []Counter{&TiktokenCounter{}, &HFCounter{}, nilTik}
	for _, c := range counters {
		if n := c.CountTokens("hello world"); n != 0 {
			t.Errorf("%T counted %d tokens", c, n)
		}
	}
}
