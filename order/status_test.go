package order

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusEnAttente, StatusValidee, StatusEnLivraison, StatusLivree, StatusAnnulee} {
		if !ValidStatus(s) {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []Status{"", "en_attente", "SHIPPED"} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestCanTransitionTo(t *testing.T) {
	allowed := map[Status][]Status{
		StatusEnAttente:   {StatusValidee, StatusAnnulee},
		StatusValidee:     {StatusEnLivraison},
		StatusEnLivraison: {StatusLivree},
		StatusLivree:      {},
		StatusAnnulee:     {},
	}

	all := []Status{StatusEnAttente, StatusValidee, StatusEnLivraison, StatusLivree, StatusAnnulee}
	for from, nexts := range allowed {
		ok := make(map[Status]bool, len(nexts))
		for _, n := range nexts {
			ok[n] = true
		}
		for _, to := range all {
			if got := from.CanTransitionTo(to); got != ok[to] {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, ok[to], got)
			}
		}
	}
}
