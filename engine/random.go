package engine

// Randomness helpers over the world's seeded source. All engine rolls go
// through these so a test can pin outcomes by seeding the world.

// randint0 returns a uniform value in [0, n). Non-positive n yields 0.
func (w *World) randint0(n int) int {
	if n <= 0 {
		return 0
	}
	return w.rng.Intn(n)
}

// randint1 returns a uniform value in [1, n]. Non-positive n yields 1.
func (w *World) randint1(n int) int {
	return w.randint0(n) + 1
}

// damroll rolls dice d sides and sums them.
func (w *World) damroll(dice, sides int) int {
	total := 0
	for i := 0; i < dice; i++ {
		total += w.randint1(sides)
	}
	return total
}

// oneIn reports true with probability 1/n.
func (w *World) oneIn(n int) bool {
	return w.randint0(n) == 0
}
