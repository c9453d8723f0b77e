package nrbf

import "testing"

func TestDocument_Diff_NoChanges(t *testing.T) {
	data := buildSample(42, 1, 2, 3, [8]byte{}, "hello")
	a, err := Load(data)
	if err != nil {
		t.Fatalf("Load(a) failed: %v", err)
	}
	b, err := Load(data)
	if err != nil {
		t.Fatalf("Load(b) failed: %v", err)
	}

	if changes := a.Diff(b); len(changes) != 0 {
		t.Errorf("Diff() = %v, want no changes", changes)
	}
}

func TestDocument_Diff_ModifiedField(t *testing.T) {
	a, err := Load(buildSample(42, 1, 2, 3, [8]byte{}, "hello"))
	if err != nil {
		t.Fatalf("Load(a) failed: %v", err)
	}
	b, err := Load(buildSample(99, 1, 2, 3, [8]byte{}, "hello"))
	if err != nil {
		t.Fatalf("Load(b) failed: %v", err)
	}

	changes := a.Diff(b)
	if len(changes) != 1 {
		t.Fatalf("Diff() = %v, want exactly one change", changes)
	}
	if changes[0].Path != "Count" {
		t.Errorf("Diff()[0].Path = %q, want %q", changes[0].Path, "Count")
	}
	if changes[0].Kind != ChangeModified {
		t.Errorf("Diff()[0].Kind = %v, want ChangeModified", changes[0].Kind)
	}
	if changes[0].Before != "42" || changes[0].After != "99" {
		t.Errorf("Diff()[0] = %+v", changes[0])
	}
}

func TestDocument_Diff_ModifiedString(t *testing.T) {
	a, err := Load(buildSample(42, 1, 2, 3, [8]byte{}, "hello"))
	if err != nil {
		t.Fatalf("Load(a) failed: %v", err)
	}
	b, err := Load(buildSample(42, 1, 2, 3, [8]byte{}, "goodbye"))
	if err != nil {
		t.Fatalf("Load(b) failed: %v", err)
	}

	changes := a.Diff(b)
	if len(changes) != 1 || changes[0].Path != "Name" {
		t.Fatalf("Diff() = %v, want a single Name change", changes)
	}
}

func TestDocument_Diff_ModifiedGuidIsSingleChange(t *testing.T) {
	a, err := Load(buildSample(42, 1, 2, 3, [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, "hello"))
	if err != nil {
		t.Fatalf("Load(a) failed: %v", err)
	}
	b, err := Load(buildSample(42, 1, 2, 3, [8]byte{8, 7, 6, 5, 4, 3, 2, 1}, "hello"))
	if err != nil {
		t.Fatalf("Load(b) failed: %v", err)
	}

	changes := a.Diff(b)
	if len(changes) != 1 {
		t.Fatalf("Diff() = %v, want exactly one change for a differing Guid (not 11 field changes)", changes)
	}
	if changes[0].Path != "Id" {
		t.Errorf("Diff()[0].Path = %q, want %q", changes[0].Path, "Id")
	}
}
