package catalog

import "testing"

func TestMethodLookupUnknown(t *testing.T) {
	if _, ok := MethodLookup(MethodNone); ok {
		t.Fatalf("none must not resolve")
	}
	if _, ok := MethodLookup(MethodMax); ok {
		t.Fatalf("out-of-range method resolved")
	}
	info, ok := MethodLookup(MethodBite)
	if !ok || !info.Cut || info.Action != "bites you." {
		t.Fatalf("bite row wrong: %+v", info)
	}
}

func TestEffectPowerDegradesToZero(t *testing.T) {
	if got := EffectPower(Effect(-1)); got != 0 {
		t.Fatalf("negative effect power = %d", got)
	}
	if got := EffectPower(EffectMax); got != 0 {
		t.Fatalf("out-of-range effect power = %d", got)
	}
	if got := EffectPower(EffectHurt); got != 40 {
		t.Fatalf("hurt power = %d, want 40", got)
	}
}

func TestEveryMethodHasActionOrFlavor(t *testing.T) {
	for m := MethodNone + 1; m < MethodMax; m++ {
		info, ok := MethodLookup(m)
		if !ok {
			t.Fatalf("method %d missing", m)
		}
		if info.Action != "" {
			continue
		}
		if m != MethodInsult && m != MethodMoan {
			t.Fatalf("method %d has neither action text nor a flavor pool", m)
		}
	}
	if len(Insults) == 0 || len(Moans) == 0 {
		t.Fatalf("flavor pools empty")
	}
}

func TestSpellSetCategoryOps(t *testing.T) {
	var s SpellSet
	s.Add(SpellBoltFire)
	s.Add(SpellHeal)
	s.Add(SpellSummonKin)

	if !s.HasCat(CatBolt) || !s.HasCat(CatSummon) {
		t.Fatalf("categories not detected")
	}

	s.RemoveCat(CatBolt)
	if s.Has(SpellBoltFire) {
		t.Fatalf("bolt survived category removal")
	}
	if !s.Has(SpellHeal) {
		t.Fatalf("heal removed by unrelated category")
	}

	s.KeepCat(CatHeal)
	if s.Has(SpellSummonKin) {
		t.Fatalf("summon survived keep-only-heal")
	}
	if !s.Has(SpellHeal) {
		t.Fatalf("heal did not survive its own keep")
	}
}

func TestSpellSetRemoveGated(t *testing.T) {
	var s SpellSet
	s.Add(SpellBoltFire)
	s.Add(SpellScare)
	s.Add(SpellDarkness) // ungated

	var known PFlagSet
	known.Set(PFlagResFire)
	known.Set(PFlagResFear)
	s.RemoveGated(known)

	if s.Has(SpellBoltFire) || s.Has(SpellScare) {
		t.Fatalf("gated spells survived")
	}
	if !s.Has(SpellDarkness) {
		t.Fatalf("ungated spell removed")
	}
}

func TestSpellSetListOrder(t *testing.T) {
	var s SpellSet
	s.Add(SpellHeal)
	s.Add(SpellShriek)
	s.Add(SpellHeal) // duplicate add is a no-op

	got := s.List()
	if len(got) != 2 || got[0] != SpellShriek || got[1] != SpellHeal {
		t.Fatalf("list = %v, want enumeration order [shriek heal]", got)
	}
}

func TestDesperationCategories(t *testing.T) {
	// The desperation mask covers escapes and support, never direct damage.
	if CatDesperation&CatBolt != 0 || CatDesperation&CatBall != 0 || CatDesperation&CatBreath != 0 {
		t.Fatalf("desperation mask includes attack categories")
	}
	for _, c := range []SpellCat{CatHaste, CatAnnoy, CatEscape, CatHeal, CatTactic, CatSummon} {
		if CatDesperation&c == 0 {
			t.Fatalf("desperation mask missing category %b", c)
		}
	}
}
