package worker

import "time"

// RetryPolicy задаёт экспоненциальную выдержку между повторами задачи.
// Нулевые поля заполняет NewSheetsWorker, сюда они не доходят.
type RetryPolicy struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// NextDelay возвращает паузу перед попыткой attempt. Попытки нумеруются
// с единицы, значения меньше считаются первой попыткой.
func (p RetryPolicy) NextDelay(attempt int) time.Duration {
	delay := p.InitialDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * p.BackoffFactor)
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return delay
}
