package validate

import "testing"

func validInput() RegistrationInput {
	return RegistrationInput{
		Nom:       "Diop",
		Prenom:    "Awa",
		Email:     "awa.diop@example.sn",
		Telephone: "+221 77 123 45 67",
		Password:  "Xk9#mTqa2!",
	}
}

func TestCheckRegistration_OK(t *testing.T) {
	got, err := CheckRegistration(validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Telephone != "+221771234567" {
		t.Fatalf("expected normalized phone, got %q", got.Telephone)
	}
}

func TestCheckRegistration_TrimsNames(t *testing.T) {
	in := validInput()
	in.Nom = "  Diop "
	in.Prenom = "\tAwa "

	got, err := CheckRegistration(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Nom != "Diop" || got.Prenom != "Awa" {
		t.Fatalf("expected trimmed names, got %q %q", got.Nom, got.Prenom)
	}
}

func TestCheckRegistration_StopsAtFirstFailingCategory(t *testing.T) {
	// Both the name and the password are wrong; only the name is reported.
	in := validInput()
	in.Nom = "D"
	in.Password = "weak"

	_, err := CheckRegistration(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Field != "nom" {
		t.Fatalf("expected field nom, got %q", err.Field)
	}
	if err.Assessment != nil {
		t.Fatal("assessment must only be set for password failures")
	}
}

func TestCheckRegistration_FieldOrder(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegistrationInput)
		field  string
	}{
		{"missing nom", func(in *RegistrationInput) { in.Nom = "" }, "nom"},
		{"short prenom", func(in *RegistrationInput) { in.Prenom = "A" }, "prenom"},
		{"bad email", func(in *RegistrationInput) { in.Email = "a..b@x.com" }, "email"},
		{"bad password", func(in *RegistrationInput) { in.Password = "short" }, "password"},
		{"bad phone", func(in *RegistrationInput) { in.Telephone = "123" }, "telephone"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := CheckRegistration(in)
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, err.Field)
			}
		})
	}
}

func TestCheckRegistration_PasswordAggregatesRules(t *testing.T) {
	in := validInput()
	in.Password = "abc"

	_, err := CheckRegistration(in)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Field != "password" {
		t.Fatalf("expected field password, got %q", err.Field)
	}
	if len(err.Errors) < 2 {
		t.Fatalf("expected every failed password rule, got %v", err.Errors)
	}
	if err.Assessment == nil {
		t.Fatal("expected assessment to accompany password failure")
	}
	if err.Assessment.Valid {
		t.Fatal("assessment must be invalid")
	}
}
