package fatinspect

import (
	"reflect"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "a normal date",
			input: 20890,
			want:  time.Date(2020, 12, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "the first possible date",
			input: 1<<5 | 1,
			want:  time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "zero is invalid",
			input: 0,
			want:  time.Time{},
		},
		{
			name:  "a zero day is invalid",
			input: 20928,
			want:  time.Time{},
		},
		{
			name:  "a zero month is invalid",
			input: 20480,
			want:  time.Time{},
		},
		{
			name:  "a month > 12 increases the year",
			input: 20922,
			want:  time.Date(2021, 1, 26, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDate(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input uint16
		want  time.Time
	}{
		{
			name:  "a normal time",
			input: 41936,
			want:  time.Date(1, 1, 1, 20, 30, 32, 0, time.UTC),
		},
		{
			name:  "midnight is zero",
			input: 0,
			want:  time.Time{},
		},
		{
			name:  "a second > 59 increases the minutes",
			input: 41951,
			want:  time.Date(1, 1, 1, 20, 31, 2, 0, time.UTC),
		},
		{
			name:  "a time > 23:59:59 gets limited to 23:59:59",
			input: 51199,
			want:  time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTime(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_dosTimestamp(t *testing.T) {
	type args struct {
		date  uint16
		clock uint16
	}
	tests := []struct {
		name string
		args args
		want time.Time
	}{
		{
			name: "a normal write time and date",
			args: args{date: 20890, clock: 41936},
			want: time.Date(2020, 12, 26, 20, 30, 32, 0, time.UTC),
		},
		{
			name: "a zero write time and date results in time.Time.IsZero() == true",
			args: args{date: 0, clock: 0},
			want: time.Time{},
		},
		{
			name: "a zero write time results in 00:00:00.000000000",
			args: args{date: 20890, clock: 0},
			want: time.Date(2020, 12, 26, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "a zero write date results in time.Time.IsZero() == true",
			args: args{date: 0, clock: 41936},
			want: time.Time{},
		},
		{
			name: "a zero write day results in time.Time.IsZero() == true",
			args: args{date: 20928, clock: 41936},
			want: time.Time{},
		},
		{
			name: "a zero write month results in time.Time.IsZero() == true",
			args: args{date: 20480, clock: 41936},
			want: time.Time{},
		},
		{
			name: "a month > 12 increases the year",
			args: args{date: 20922, clock: 41936},
			want: time.Date(2021, 1, 26, 20, 30, 32, 0, time.UTC),
		},
		{
			name: "a minute > 59 increases the hours",
			args: args{date: 20890, clock: 42992},
			want: time.Date(2020, 12, 26, 21, 3, 32, 0, time.UTC),
		},
		{
			name: "a time > 23:59:59 gets limited to 23:59:59",
			args: args{date: 20890, clock: 51199},
			want: time.Date(2020, 12, 26, 23, 59, 59, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dosTimestamp(tt.args.date, tt.args.clock)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("dosTimestamp() = %v, want %v", got, tt.want)
			}
			if got.IsZero() != tt.want.IsZero() {
				t.Errorf("dosTimestamp().IsZero() = %v, want.IsZero() %v", got.IsZero(), tt.want.IsZero())
			}
		})
	}
}
