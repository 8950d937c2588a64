package profile

import "testing"

func TestApplyOverridesOnlyNonEmptyFields(t *testing.T) {
	existing := &Profile{UserInfo: UserInfo{FullName: "Jane Doe", Email: ""}}

	existing.Apply(&Fragment{UserInfo: UserInfo{FullName: "", Email: "jane@x.com"}})

	if existing.UserInfo.FullName != "Jane Doe" {
		t.Fatalf("empty extracted field must not overwrite, got %q", existing.UserInfo.FullName)
	}

	if existing.UserInfo.Email != "jane@x.com" {
		t.Fatalf("non-empty extracted field must overwrite, got %q", existing.UserInfo.Email)
	}
}

func TestApplyReplacesExperiencesOnlyWhenPresent(t *testing.T) {
	existing := &Profile{Experiences: []*Experience{{ID: "1", Company: "Acme"}}}

	existing.Apply(&Fragment{})
	if len(existing.Experiences) != 1 {
		t.Fatalf("empty fragment must keep experiences, got %d", len(existing.Experiences))
	}

	existing.Apply(&Fragment{Experiences: []*Experience{
		{ID: "2", Company: "Globex"},
		{ID: "3", Company: "Initech"},
	}})
	if len(existing.Experiences) != 2 || existing.Experiences[0].Company != "Globex" {
		t.Fatalf("fragment experiences must replace existing ones: %+v", existing.Experiences)
	}
}

func TestApplyNilFragment(t *testing.T) {
	existing := &Profile{UserInfo: UserInfo{FullName: "Jane Doe"}}

	existing.Apply(nil)

	if existing.UserInfo.FullName != "Jane Doe" {
		t.Fatalf("nil fragment must be a no-op")
	}
}

func TestLanguageName(t *testing.T) {
	name, err := LanguageName(LanguageGerman)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "German" {
		t.Fatalf("unexpected language name: %s", name)
	}

	if _, err := LanguageName("xx"); err == nil {
		t.Fatalf("expected error for unsupported language code")
	}
}

func TestValidateStyle(t *testing.T) {
	for _, style := range []DocumentStyle{StyleProfessional, StyleCreative, StyleModern} {
		if err := ValidateStyle(style); err != nil {
			t.Fatalf("unexpected error for %s: %v", style, err)
		}
	}

	if err := ValidateStyle("sloppy"); err == nil {
		t.Fatalf("expected error for unsupported style")
	}
}
