package station

// PortBucket 一类端口：数量字段和端口列表字段
type PortBucket struct {
	Count Field
	List  Field
}

var (
	// FederalBucket 联邦资助端口
	FederalBucket = PortBucket{Count: FieldNumFedFundedPorts, List: FieldFedFundedPorts}
	// NonFederalBucket 非联邦资助端口
	NonFederalBucket = PortBucket{Count: FieldNumNonFedFundedPorts, List: FieldNonFedFundedPorts}
)

func (b PortBucket) count(r *Record) PortCount {
	if b.Count == FieldNumNonFedFundedPorts {
		return r.NumNonFedFundedPorts
	}
	return r.NumFedFundedPorts
}

func (b PortBucket) entries(r *Record) []PortEntry {
	if b.List == FieldNonFedFundedPorts {
		return r.NonFedFundedPorts
	}
	return r.FedFundedPorts
}

// ValidatePortCount 核对一类端口的数量字段与端口列表
//
// 数量字段的状态每次调用都重新计算，不受上一次结果影响。判断顺序：
//  1. 必填且未填写数量：未填写
//  2. 非必填，数量未填写或为 0，且列表为空：通过
//  3. 必填且数量为 0：zero
//  4. 数量大于列表长度：greater_than；小于：less_than；相等：通过
//
// 未填写的数量按 0 参与比较。返回更新后的状态副本，以及需要追加到汇总横幅的标签
func ValidatePortCount(required bool, b PortBucket, r *Record, states FieldStates) (FieldStates, []string) {
	out := states.Clone()
	delete(out, b.Count)

	state := portCountState(required, b.count(r), len(b.entries(r)))
	out[b.Count] = state

	var labels []string
	if state.IsMalformed() {
		labels = append(labels, b.Count.Label())
	}
	return out, labels
}

func portCountState(required bool, count PortCount, listed int) FieldState {
	provided := count.Provided()

	if required && !provided {
		return Missing()
	}
	if !required && (!provided || count.Zero()) && listed == 0 {
		return Valid()
	}

	declared := 0
	if provided {
		n, ok := count.Int()
		if !ok || n < 0 || n > MaxPortCount {
			return Malformed(ReasonFormat)
		}
		declared = n
	}

	switch {
	case required && count.Zero():
		return Malformed(ReasonZero)
	case declared > listed:
		return Malformed(ReasonGreaterThan)
	case declared < listed:
		return Malformed(ReasonLessThan)
	default:
		return Valid()
	}
}
