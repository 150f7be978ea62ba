package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Dice
		wantErr bool
	}{
		{name: "простая запись", input: "2d6", want: Dice{Count: 2, Sides: 6}},
		{name: "бонус справа", input: "1d8+3", want: Dice{Count: 1, Sides: 8, Bonus: 3}},
		{name: "бонус слева", input: "3+2d4", want: Dice{Count: 2, Sides: 4, Bonus: 3}},
		{name: "пустая строка", input: "", want: Dice{}},
		{name: "пробелы по краям", input: "  1d6  ", want: Dice{Count: 1, Sides: 6}},
		{name: "без разделителя", input: "26", wantErr: true},
		{name: "мусор в количестве", input: "xd6", wantErr: true},
		{name: "мусор в гранях", input: "2dy", wantErr: true},
		{name: "мусор в бонусе", input: "2d6+z", wantErr: true},
		{name: "отрицательные кубики", input: "-1d6", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDice(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiceRollStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	d := Dice{Count: 3, Sides: 6, Bonus: 2}

	for i := 0; i < 200; i++ {
		roll := d.Roll(rng)
		assert.GreaterOrEqual(t, roll, d.Min())
		assert.LessOrEqual(t, roll, d.Max())
	}
}

func TestDiceDegenerateForms(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	// Нулевые кубики: бросок равен бонусу.
	flat := Dice{Bonus: 5}
	assert.Equal(t, 5, flat.Roll(rng))
	assert.Equal(t, 5, flat.Min())
	assert.Equal(t, 5, flat.Max())

	// 1d1 - детерминированная единица, запасной вариант боевки.
	one := Dice{Count: 1, Sides: 1}
	assert.Equal(t, 1, one.Roll(rng))

	// Пустая запись бьет нулем.
	zero := Dice{}
	assert.Equal(t, 0, zero.Roll(rng))
	assert.Equal(t, 0, zero.Max())
}
