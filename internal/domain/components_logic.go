package domain

// TakeDamage наносит урон. Возвращает true, если здоровье упало до нуля или ниже.
func (h *HpComponent) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	h.Current -= amount
	return h.Current <= 0
}

// Heal лечит не выше максимума, возвращает фактически восстановленное
func (h *HpComponent) Heal(amount int) int {
	if amount <= 0 || h.Current >= h.Max {
		return 0
	}
	missing := h.Max - h.Current
	if amount > missing {
		amount = missing
	}
	h.Current += amount
	return amount
}

// Ready - можно ли выдать новое намерение
func (c *Cooldown) Ready() bool {
	return c.TimeRemaining <= 0
}

// Tick уменьшает остаток на прошедшее время
func (c *Cooldown) Tick(dt float64) {
	if c.TimeRemaining > 0 {
		c.TimeRemaining -= dt
	}
}

// StartMove сбрасывает таймер на длительность движения
func (c *Cooldown) StartMove() {
	c.TimeRemaining = c.MoveTime
}

// StartAttack сбрасывает таймер на длительность атаки
func (c *Cooldown) StartAttack() {
	c.TimeRemaining = c.AttackTime
}
