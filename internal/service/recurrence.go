package service

import (
	"time"

	"github.com/BuzzLyutic/dashboard-api/internal/model"
)

// ShouldReset решает, показывать ли повторяющуюся задачу как невыполненную.
// Чистая функция от правила, даты последнего выполнения и текущего момента,
// ничего не пишет в хранилище.
//
// daily/weekday сравнивают календарные дни (граница — полночь),
// weekly считает полные прошедшие сутки.
func ShouldReset(recurrence string, lastCompleted *time.Time, now time.Time) bool {
	if lastCompleted == nil {
		return false
	}

	switch recurrence {
	case model.RecurrenceDaily:
		return beforeToday(*lastCompleted, now)

	case model.RecurrenceWeekday:
		// По выходным просроченное выполнение не сбрасывается
		wd := now.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			return false
		}
		return beforeToday(*lastCompleted, now)

	case model.RecurrenceWeekly:
		days := int(now.Sub(*lastCompleted).Hours() / 24)
		return days >= 7
	}

	return false
}

// beforeToday сравнивает календарные дни в зоне текущего момента,
// иначе около полуночи UTC-метка из БД уезжает на соседний день
func beforeToday(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	last := time.Date(ty, tm, td, 0, 0, 0, 0, now.Location())
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, now.Location())
	return last.Before(today)
}
