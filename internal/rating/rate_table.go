package rating

import (
	"fmt"

	"github.com/hellaspet/backend-insurance/internal/money"
)

// Rate is the tabulated component split of one base-rate row. Gross is the
// pre-surcharge total; net + fee + tax reconstructs gross within 0.02.
type Rate struct {
	Net   money.Money
	Fee   money.Money
	Tax   money.Money
	Gross money.Money
}

// Entry is one immutable base-rate row. Rows exist per billing frequency and
// per pet slot as independent literals; nothing here is derived at runtime.
type Entry struct {
	Species   Species
	Tier      ProgramTier
	Bucket    WeightBucket
	Frequency BillingFrequency
	Slot      PetSlot
	Rate      Rate
}

func entry(net, fee, tax, gross string) Rate {
	return Rate{
		Net:   money.MustParse(net),
		Fee:   money.MustParse(fee),
		Tax:   money.MustParse(tax),
		Gross: money.MustParse(gross),
	}
}

// rateRows is the full base-rate table. Dog sells four weight buckets, cat
// sells two; the remaining combinations intentionally have no rows and fail
// lookup. Secondary-pet rows are separate literals, not a runtime discount.
var rateRows = []Entry{
	{SpeciesDog, TierSilver, WeightUpTo10, FrequencyAnnual, SlotPrimary, entry("111.54", "33.46", "21.75", "166.75")},
	{SpeciesDog, TierSilver, WeightUpTo10, FrequencyAnnual, SlotSecondary, entry("105.96", "31.79", "20.66", "158.41")},
	{SpeciesDog, TierSilver, WeightUpTo10, FrequencySemester, SlotPrimary, entry("58.56", "17.57", "11.42", "87.54")},
	{SpeciesDog, TierSilver, WeightUpTo10, FrequencySemester, SlotSecondary, entry("55.63", "16.69", "10.85", "83.16")},
	{SpeciesDog, TierSilver, WeightUpTo10, FrequencyQuarter, SlotPrimary, entry("30.68", "9.20", "5.98", "45.86")},
	{SpeciesDog, TierSilver, WeightUpTo10, FrequencyQuarter, SlotSecondary, entry("29.14", "8.74", "5.68", "43.57")},
	{SpeciesDog, TierSilver, Weight11To20, FrequencyAnnual, SlotPrimary, entry("138.60", "41.58", "27.03", "207.20")},
	{SpeciesDog, TierSilver, Weight11To20, FrequencyAnnual, SlotSecondary, entry("131.67", "39.50", "25.68", "196.84")},
	{SpeciesDog, TierSilver, Weight11To20, FrequencySemester, SlotPrimary, entry("72.76", "21.83", "14.19", "108.78")},
	{SpeciesDog, TierSilver, Weight11To20, FrequencySemester, SlotSecondary, entry("69.12", "20.74", "13.48", "103.34")},
	{SpeciesDog, TierSilver, Weight11To20, FrequencyQuarter, SlotPrimary, entry("38.11", "11.43", "7.43", "56.98")},
	{SpeciesDog, TierSilver, Weight11To20, FrequencyQuarter, SlotSecondary, entry("36.21", "10.86", "7.06", "54.13")},
	{SpeciesDog, TierSilver, Weight21To40, FrequencyAnnual, SlotPrimary, entry("156.62", "46.99", "30.54", "234.14")},
	{SpeciesDog, TierSilver, Weight21To40, FrequencyAnnual, SlotSecondary, entry("148.78", "44.63", "29.01", "222.43")},
	{SpeciesDog, TierSilver, Weight21To40, FrequencySemester, SlotPrimary, entry("82.22", "24.67", "16.03", "122.92")},
	{SpeciesDog, TierSilver, Weight21To40, FrequencySemester, SlotSecondary, entry("78.11", "23.43", "15.23", "116.77")},
	{SpeciesDog, TierSilver, Weight21To40, FrequencyQuarter, SlotPrimary, entry("43.07", "12.92", "8.40", "64.39")},
	{SpeciesDog, TierSilver, Weight21To40, FrequencyQuarter, SlotSecondary, entry("40.92", "12.28", "7.98", "61.17")},
	{SpeciesDog, TierSilver, WeightOver40, FrequencyAnnual, SlotPrimary, entry("170.14", "51.04", "33.18", "254.36")},
	{SpeciesDog, TierSilver, WeightOver40, FrequencyAnnual, SlotSecondary, entry("161.63", "48.49", "31.52", "241.64")},
	{SpeciesDog, TierSilver, WeightOver40, FrequencySemester, SlotPrimary, entry("89.32", "26.80", "17.42", "133.54")},
	{SpeciesDog, TierSilver, WeightOver40, FrequencySemester, SlotSecondary, entry("84.86", "25.46", "16.55", "126.86")},
	{SpeciesDog, TierSilver, WeightOver40, FrequencyQuarter, SlotPrimary, entry("46.79", "14.04", "9.12", "69.95")},
	{SpeciesDog, TierSilver, WeightOver40, FrequencyQuarter, SlotSecondary, entry("44.45", "13.34", "8.67", "66.45")},
	{SpeciesDog, TierGold, WeightUpTo10, FrequencyAnnual, SlotPrimary, entry("156.62", "46.99", "30.54", "234.14")},
	{SpeciesDog, TierGold, WeightUpTo10, FrequencyAnnual, SlotSecondary, entry("148.78", "44.63", "29.01", "222.43")},
	{SpeciesDog, TierGold, WeightUpTo10, FrequencySemester, SlotPrimary, entry("82.22", "24.67", "16.03", "122.92")},
	{SpeciesDog, TierGold, WeightUpTo10, FrequencySemester, SlotSecondary, entry("78.11", "23.43", "15.23", "116.77")},
	{SpeciesDog, TierGold, WeightUpTo10, FrequencyQuarter, SlotPrimary, entry("43.07", "12.92", "8.40", "64.39")},
	{SpeciesDog, TierGold, WeightUpTo10, FrequencyQuarter, SlotSecondary, entry("40.92", "12.28", "7.98", "61.17")},
	{SpeciesDog, TierGold, Weight11To20, FrequencyAnnual, SlotPrimary, entry("174.64", "52.39", "34.05", "261.09")},
	{SpeciesDog, TierGold, Weight11To20, FrequencyAnnual, SlotSecondary, entry("165.91", "49.77", "32.35", "248.04")},
	{SpeciesDog, TierGold, Weight11To20, FrequencySemester, SlotPrimary, entry("91.69", "27.51", "17.88", "137.07")},
	{SpeciesDog, TierGold, Weight11To20, FrequencySemester, SlotSecondary, entry("87.10", "26.13", "16.98", "130.22")},
	{SpeciesDog, TierGold, Weight11To20, FrequencyQuarter, SlotPrimary, entry("48.03", "14.41", "9.37", "71.80")},
	{SpeciesDog, TierGold, Weight11To20, FrequencyQuarter, SlotSecondary, entry("45.63", "13.69", "8.90", "68.21")},
	{SpeciesDog, TierGold, Weight21To40, FrequencyAnnual, SlotPrimary, entry("192.68", "57.80", "37.57", "288.05")},
	{SpeciesDog, TierGold, Weight21To40, FrequencyAnnual, SlotSecondary, entry("183.04", "54.91", "35.69", "273.65")},
	{SpeciesDog, TierGold, Weight21To40, FrequencySemester, SlotPrimary, entry("101.16", "30.35", "19.73", "151.23")},
	{SpeciesDog, TierGold, Weight21To40, FrequencySemester, SlotSecondary, entry("96.10", "28.83", "18.74", "143.67")},
	{SpeciesDog, TierGold, Weight21To40, FrequencyQuarter, SlotPrimary, entry("52.98", "15.89", "10.33", "79.21")},
	{SpeciesDog, TierGold, Weight21To40, FrequencyQuarter, SlotSecondary, entry("50.33", "15.10", "9.81", "75.25")},
	{SpeciesDog, TierGold, WeightOver40, FrequencyAnnual, SlotPrimary, entry("206.19", "61.86", "40.21", "308.26")},
	{SpeciesDog, TierGold, WeightOver40, FrequencyAnnual, SlotSecondary, entry("195.89", "58.77", "38.20", "292.85")},
	{SpeciesDog, TierGold, WeightOver40, FrequencySemester, SlotPrimary, entry("108.25", "32.48", "21.11", "161.84")},
	{SpeciesDog, TierGold, WeightOver40, FrequencySemester, SlotSecondary, entry("102.84", "30.85", "20.05", "153.75")},
	{SpeciesDog, TierGold, WeightOver40, FrequencyQuarter, SlotPrimary, entry("56.70", "17.01", "11.06", "84.77")},
	{SpeciesDog, TierGold, WeightOver40, FrequencyQuarter, SlotSecondary, entry("53.87", "16.16", "10.50", "80.53")},
	{SpeciesDog, TierPlatinum, WeightUpTo10, FrequencyAnnual, SlotPrimary, entry("246.77", "74.03", "48.12", "368.92")},
	{SpeciesDog, TierPlatinum, WeightUpTo10, FrequencyAnnual, SlotSecondary, entry("234.43", "70.33", "45.71", "350.47")},
	{SpeciesDog, TierPlatinum, WeightUpTo10, FrequencySemester, SlotPrimary, entry("129.55", "38.87", "25.26", "193.68")},
	{SpeciesDog, TierPlatinum, WeightUpTo10, FrequencySemester, SlotSecondary, entry("123.08", "36.92", "24.00", "184.00")},
	{SpeciesDog, TierPlatinum, WeightUpTo10, FrequencyQuarter, SlotPrimary, entry("67.86", "20.36", "13.23", "101.45")},
	{SpeciesDog, TierPlatinum, WeightUpTo10, FrequencyQuarter, SlotSecondary, entry("64.47", "19.34", "12.57", "96.38")},
	{SpeciesDog, TierPlatinum, Weight11To20, FrequencyAnnual, SlotPrimary, entry("260.30", "78.09", "50.76", "389.15")},
	{SpeciesDog, TierPlatinum, Weight11To20, FrequencyAnnual, SlotSecondary, entry("247.28", "74.18", "48.22", "369.69")},
	{SpeciesDog, TierPlatinum, Weight11To20, FrequencySemester, SlotPrimary, entry("136.66", "41.00", "26.65", "204.30")},
	{SpeciesDog, TierPlatinum, Weight11To20, FrequencySemester, SlotSecondary, entry("129.83", "38.95", "25.32", "194.09")},
	{SpeciesDog, TierPlatinum, Weight11To20, FrequencyQuarter, SlotPrimary, entry("71.59", "21.48", "13.96", "107.02")},
	{SpeciesDog, TierPlatinum, Weight11To20, FrequencyQuarter, SlotSecondary, entry("68.01", "20.40", "13.26", "101.67")},
	{SpeciesDog, TierPlatinum, Weight21To40, FrequencyAnnual, SlotPrimary, entry("273.82", "82.15", "53.39", "409.36")},
	{SpeciesDog, TierPlatinum, Weight21To40, FrequencyAnnual, SlotSecondary, entry("260.13", "78.04", "50.73", "388.89")},
	{SpeciesDog, TierPlatinum, Weight21To40, FrequencySemester, SlotPrimary, entry("143.75", "43.13", "28.03", "214.91")},
	{SpeciesDog, TierPlatinum, Weight21To40, FrequencySemester, SlotSecondary, entry("136.56", "40.97", "26.63", "204.16")},
	{SpeciesDog, TierPlatinum, Weight21To40, FrequencyQuarter, SlotPrimary, entry("75.30", "22.59", "14.68", "112.57")},
	{SpeciesDog, TierPlatinum, Weight21To40, FrequencyQuarter, SlotSecondary, entry("71.53", "21.46", "13.95", "106.94")},
	{SpeciesDog, TierPlatinum, WeightOver40, FrequencyAnnual, SlotPrimary, entry("291.85", "87.56", "56.91", "436.32")},
	{SpeciesDog, TierPlatinum, WeightOver40, FrequencyAnnual, SlotSecondary, entry("277.26", "83.18", "54.07", "414.50")},
	{SpeciesDog, TierPlatinum, WeightOver40, FrequencySemester, SlotPrimary, entry("153.22", "45.97", "29.88", "229.07")},
	{SpeciesDog, TierPlatinum, WeightOver40, FrequencySemester, SlotSecondary, entry("145.57", "43.67", "28.39", "217.62")},
	{SpeciesDog, TierPlatinum, WeightOver40, FrequencyQuarter, SlotPrimary, entry("80.26", "24.08", "15.65", "119.99")},
	{SpeciesDog, TierPlatinum, WeightOver40, FrequencyQuarter, SlotSecondary, entry("76.25", "22.88", "14.87", "113.99")},
	{SpeciesCat, TierSilver, WeightUpTo10, FrequencyAnnual, SlotPrimary, entry("76.13", "22.84", "14.85", "113.81")},
	{SpeciesCat, TierSilver, WeightUpTo10, FrequencyAnnual, SlotSecondary, entry("72.32", "21.70", "14.10", "108.12")},
	{SpeciesCat, TierSilver, WeightUpTo10, FrequencySemester, SlotPrimary, entry("39.97", "11.99", "7.79", "59.75")},
	{SpeciesCat, TierSilver, WeightUpTo10, FrequencySemester, SlotSecondary, entry("37.97", "11.39", "7.40", "56.76")},
	{SpeciesCat, TierSilver, WeightUpTo10, FrequencyQuarter, SlotPrimary, entry("20.94", "6.28", "4.08", "31.30")},
	{SpeciesCat, TierSilver, WeightUpTo10, FrequencyQuarter, SlotSecondary, entry("19.89", "5.97", "3.88", "29.74")},
	{SpeciesCat, TierSilver, Weight11To20, FrequencyAnnual, SlotPrimary, entry("94.33", "28.30", "18.39", "141.02")},
	{SpeciesCat, TierSilver, Weight11To20, FrequencyAnnual, SlotSecondary, entry("89.61", "26.88", "17.47", "133.97")},
	{SpeciesCat, TierSilver, Weight11To20, FrequencySemester, SlotPrimary, entry("49.53", "14.86", "9.66", "74.04")},
	{SpeciesCat, TierSilver, Weight11To20, FrequencySemester, SlotSecondary, entry("47.05", "14.12", "9.17", "70.34")},
	{SpeciesCat, TierSilver, Weight11To20, FrequencyQuarter, SlotPrimary, entry("25.94", "7.78", "5.06", "38.78")},
	{SpeciesCat, TierSilver, Weight11To20, FrequencyQuarter, SlotSecondary, entry("24.64", "7.39", "4.80", "36.84")},
	{SpeciesCat, TierGold, WeightUpTo10, FrequencyAnnual, SlotPrimary, entry("112.52", "33.76", "21.94", "168.22")},
	{SpeciesCat, TierGold, WeightUpTo10, FrequencyAnnual, SlotSecondary, entry("106.90", "32.07", "20.85", "159.81")},
	{SpeciesCat, TierGold, WeightUpTo10, FrequencySemester, SlotPrimary, entry("59.08", "17.72", "11.52", "88.32")},
	{SpeciesCat, TierGold, WeightUpTo10, FrequencySemester, SlotSecondary, entry("56.12", "16.84", "10.94", "83.90")},
	{SpeciesCat, TierGold, WeightUpTo10, FrequencyQuarter, SlotPrimary, entry("30.94", "9.28", "6.03", "46.26")},
	{SpeciesCat, TierGold, WeightUpTo10, FrequencyQuarter, SlotSecondary, entry("29.40", "8.82", "5.73", "43.95")},
	{SpeciesCat, TierGold, Weight11To20, FrequencyAnnual, SlotPrimary, entry("126.16", "37.85", "24.60", "188.61")},
	{SpeciesCat, TierGold, Weight11To20, FrequencyAnnual, SlotSecondary, entry("119.85", "35.96", "23.37", "179.18")},
	{SpeciesCat, TierGold, Weight11To20, FrequencySemester, SlotPrimary, entry("66.23", "19.87", "12.91", "99.02")},
	{SpeciesCat, TierGold, Weight11To20, FrequencySemester, SlotSecondary, entry("62.92", "18.88", "12.27", "94.07")},
	{SpeciesCat, TierGold, Weight11To20, FrequencyQuarter, SlotPrimary, entry("34.70", "10.41", "6.77", "51.87")},
	{SpeciesCat, TierGold, Weight11To20, FrequencyQuarter, SlotSecondary, entry("32.96", "9.89", "6.43", "49.28")},
	{SpeciesCat, TierPlatinum, WeightUpTo10, FrequencyAnnual, SlotPrimary, entry("185.30", "55.59", "36.13", "277.02")},
	{SpeciesCat, TierPlatinum, WeightUpTo10, FrequencyAnnual, SlotSecondary, entry("176.03", "52.81", "34.33", "263.17")},
	{SpeciesCat, TierPlatinum, WeightUpTo10, FrequencySemester, SlotPrimary, entry("97.28", "29.18", "18.97", "145.44")},
	{SpeciesCat, TierPlatinum, WeightUpTo10, FrequencySemester, SlotSecondary, entry("92.42", "27.73", "18.02", "138.17")},
	{SpeciesCat, TierPlatinum, WeightUpTo10, FrequencyQuarter, SlotPrimary, entry("50.96", "15.29", "9.94", "76.18")},
	{SpeciesCat, TierPlatinum, WeightUpTo10, FrequencyQuarter, SlotSecondary, entry("48.41", "14.52", "9.44", "72.37")},
	{SpeciesCat, TierPlatinum, Weight11To20, FrequencyAnnual, SlotPrimary, entry("208.04", "62.41", "40.57", "311.02")},
	{SpeciesCat, TierPlatinum, Weight11To20, FrequencyAnnual, SlotSecondary, entry("197.64", "59.29", "38.54", "295.47")},
	{SpeciesCat, TierPlatinum, Weight11To20, FrequencySemester, SlotPrimary, entry("109.22", "32.77", "21.30", "163.29")},
	{SpeciesCat, TierPlatinum, Weight11To20, FrequencySemester, SlotSecondary, entry("103.77", "31.13", "20.24", "155.13")},
	{SpeciesCat, TierPlatinum, Weight11To20, FrequencyQuarter, SlotPrimary, entry("57.21", "17.16", "11.16", "85.53")},
	{SpeciesCat, TierPlatinum, Weight11To20, FrequencyQuarter, SlotSecondary, entry("54.35", "16.31", "10.60", "81.25")},
}

type tableKey struct {
	species   Species
	tier      ProgramTier
	bucket    WeightBucket
	frequency BillingFrequency
	slot      PetSlot
}

var rateIndex = buildRateIndex()

func buildRateIndex() map[tableKey]Entry {
	index := make(map[tableKey]Entry, len(rateRows))
	for _, row := range rateRows {
		key := tableKey{row.Species, row.Tier, row.Bucket, row.Frequency, row.Slot}
		if _, dup := index[key]; dup {
			panic(fmt.Sprintf("rating: duplicate rate row %+v", key))
		}
		index[key] = row
	}
	return index
}

// Lookup returns the base-rate row for the combination, or ErrMissingRateEntry
// when the species does not sell it. No fallback happens here.
func Lookup(species Species, tier ProgramTier, bucket WeightBucket, frequency BillingFrequency, slot PetSlot) (Entry, error) {
	row, ok := rateIndex[tableKey{species, tier, bucket, frequency, slot}]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s/%s/%s/%s/%s", ErrMissingRateEntry, species, tier, bucket, frequency, slot)
	}
	return row, nil
}

// Rows returns a copy of every table row, primarily for consistency checks.
func Rows() []Entry {
	out := make([]Entry, len(rateRows))
	copy(out, rateRows)
	return out
}
